package classify

import (
	"testing"

	"github.com/SamuelMarks/snackbar-migrate/pkg/match"
)

func classifySrc(t *testing.T, src string, opts Options) Result {
	t.Helper()
	sites := match.Find(src, match.DefaultPattern())
	if len(sites) != 1 {
		t.Fatalf("expected 1 call site, got %d", len(sites))
	}
	return Classify(sites[0], opts)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want Result
	}{
		{
			name: "GreenIsSuccess",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Saved'), backgroundColor: Colors.green));`,
			want: Result{Severity: Success},
		},
		{
			name: "RedIsError",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Failed'), backgroundColor: Colors.red));`,
			want: Result{Severity: Error},
		},
		{
			name: "RedShadeIsError",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('x'), backgroundColor: Colors.red.shade700));`,
			want: Result{Severity: Error},
		},
		{
			name: "ThemeErrorIsError",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('x'), backgroundColor: Theme.of(context).colorScheme.error));`,
			want: Result{Severity: Error},
		},
		{
			name: "ErrorMarkerIsError",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Erreur: ' + e.toString())));`,
			want: Result{Severity: Error},
		},
		{
			name: "ErrorWinsOverSuccessWordInMessage",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('success was not possible'), backgroundColor: Colors.red));`,
			want: Result{Severity: Error},
		},
		{
			name: "ErrorWinsOverIncidentalGreen",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Erreur: x', style: TextStyle(color: Colors.green))));`,
			want: Result{Severity: Error},
		},
		{
			name: "ColourNameInsideLiteralIgnored",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Colors.red')));`,
			want: Result{Severity: Info},
		},
		{
			name: "Ternary",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text(message), backgroundColor: success ? Colors.green : Colors.red));`,
			want: Result{Severity: Conditional, Condition: "success", SuccessWhenTrue: true},
		},
		{
			name: "MirroredTernaryWithParens",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text(message), backgroundColor: (result.failed) ? Colors.red : Colors.green));`,
			want: Result{Severity: Conditional, Condition: "result.failed", SuccessWhenTrue: false},
		},
		{
			name: "ParenthesisedTernary",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('x'), backgroundColor: (ok ? Colors.green : Colors.red)));`,
			want: Result{Severity: Conditional, Condition: "ok", SuccessWhenTrue: true},
		},
		{
			name: "DoublyParenthesisedMirroredTernary",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('x'), backgroundColor: ((failed) ? Colors.red : Colors.green)));`,
			want: Result{Severity: Conditional, Condition: "failed", SuccessWhenTrue: false},
		},
		{
			name: "TernaryWithErrorMarkerIsError",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('Erreur: ' + m), backgroundColor: ok ? Colors.green : Colors.red));`,
			want: Result{Severity: Error},
		},
		{
			name: "UnrelatedTernaryIgnored",
			src:  `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text(m), duration: long ? d1 : d2));`,
			want: Result{Severity: Info},
		},
		{
			name: "BareIsInfo",
			src:  `ScaffoldMessenger.of(context).showSnackBar(const SnackBar(content: Text('Copied')));`,
			want: Result{Severity: Info},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifySrc(t, tt.src, DefaultOptions())
			if got != tt.want {
				t.Errorf("Classify = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestClassify_ReviewPolicy(t *testing.T) {
	opts := DefaultOptions()
	opts.Default = Unclassified
	got := classifySrc(t, `ScaffoldMessenger.of(context).showSnackBar(SnackBar(content: Text('x')));`, opts)
	if got.Severity != Unclassified {
		t.Errorf("expected Unclassified, got %v", got.Severity)
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    Severity
		wantErr bool
	}{
		{"", Info, false},
		{"info", Info, false},
		{"Review", Unclassified, false},
		{"ignore", Info, true},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePolicy(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestSeverity_String(t *testing.T) {
	if Success.String() != "success" || Conditional.String() != "conditional" || Severity(42).String() != "severity(42)" {
		t.Error("unexpected severity names")
	}
}
