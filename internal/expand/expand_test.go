package expand

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xpanderd/xpander/internal/config"
	"github.com/xpanderd/xpander/internal/matcher"
)

func TestBasicExpansion(t *testing.T) {
	e := New(nil)
	res, err := e.Expand(matcher.Result{
		Snippet:       config.Snippet{Trigger: ";test", Replace: "hello world"},
		TypedTrigger:  ";test",
		RunesToDelete: 5,
	})
	require.NoError(t, err)
	require.Equal(t, "hello world", res.Text)
	require.Equal(t, 5, res.RunesToDelete)
	require.Nil(t, res.CursorOffset)
}

func TestCaptureReplacement(t *testing.T) {
	e := New(nil)
	res, err := e.Expand(matcher.Result{
		Snippet:      config.Snippet{Trigger: ";d", Replace: "Number: $1, Code: $2"},
		TypedTrigger: ";d123ABC",
		Captures:     []string{"123", "ABC"},
	})
	require.NoError(t, err)
	require.Equal(t, "Number: 123, Code: ABC", res.Text)
}

func TestCursorPosition(t *testing.T) {
	s := config.Snippet{Trigger: ";sig", Replace: "Hello {{cursor}} World", CursorPosition: true}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";sig", RunesToDelete: 4})
	require.NoError(t, err)
	require.Equal(t, "Hello  World", res.Text)
	require.NotNil(t, res.CursorOffset)
	require.Equal(t, 6, *res.CursorOffset)
}

func TestCasePropagationAllUpper(t *testing.T) {
	s := config.Snippet{Trigger: ";EMAIL", Replace: "test@example.com", PropagateCase: true}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";EMAIL", RunesToDelete: 6})
	require.NoError(t, err)
	require.Equal(t, "TEST@EXAMPLE.COM", res.Text)
}

func TestCasePropagationTitleCase(t *testing.T) {
	s := config.Snippet{Trigger: "Email", Replace: "test@example.com", PropagateCase: true}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: "Email", RunesToDelete: 5})
	require.NoError(t, err)
	require.Equal(t, "Test@example.com", res.Text)
}

func TestCasePropagationLowerLeavesAlone(t *testing.T) {
	s := config.Snippet{Trigger: "email", Replace: "Test@Example.com", PropagateCase: true}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: "email", RunesToDelete: 5})
	require.NoError(t, err)
	require.Equal(t, "Test@Example.com", res.Text)
}

func TestEnvVariableExpansion(t *testing.T) {
	os.Setenv("XPANDER_TEST_VAR", "expanded")
	defer os.Unsetenv("XPANDER_TEST_VAR")

	s := config.Snippet{Trigger: ";test", Replace: "Value: {{env:XPANDER_TEST_VAR}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test", RunesToDelete: 5})
	require.NoError(t, err)
	require.Equal(t, "Value: expanded", res.Text)
}

func TestShellVariableExpansion(t *testing.T) {
	s := config.Snippet{Trigger: ";test", Replace: "{{shell:echo hello}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Equal(t, "hello", res.Text)
}

func TestRandomVariableProducesRequestedDigitCount(t *testing.T) {
	s := config.Snippet{Trigger: ";test", Replace: "{{random:5}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Len(t, res.Text, 5)
	for _, r := range res.Text {
		require.True(t, r >= '0' && r <= '9')
	}
}

func TestUUIDVariableExpansion(t *testing.T) {
	s := config.Snippet{Trigger: ";test", Replace: "{{uuid}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Len(t, res.Text, 36)
}

func TestDateVariableDefaultFormat(t *testing.T) {
	s := config.Snippet{Trigger: ";test", Replace: "{{date}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Len(t, res.Text, 10)
}

func TestCustomVariableDotPath(t *testing.T) {
	vars := &config.VarNode{
		Kind: config.VarMap,
		Map: map[string]*config.VarNode{
			"user": {
				Kind: config.VarMap,
				Map: map[string]*config.VarNode{
					"name": {Kind: config.VarString, Str: "Rafa"},
					"contact": {
						Kind: config.VarMap,
						Map: map[string]*config.VarNode{
							"email": {Kind: config.VarString, Str: "test@example.com"},
						},
					},
					"age": {Kind: config.VarNumber, Num: 30},
				},
			},
		},
	}

	e := New(vars)
	s := config.Snippet{
		Trigger: ";test",
		Replace: "Hi {{user.name}}, email: {{user.contact.email}}, age: {{user.age}}",
	}
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Contains(t, res.Text, "Hi Rafa")
	require.Contains(t, res.Text, "email: test@example.com")
	require.Contains(t, res.Text, "age: 30")
}

func TestExpandVariablesRoundTripsTextWithNoPlaceholders(t *testing.T) {
	e := New(nil)
	plain := "just plain text, no braces here."
	got, err := e.expandVariables(plain)
	require.NoError(t, err)
	require.Equal(t, plain, got)
}

func TestPropagateCaseIsIdempotent(t *testing.T) {
	cases := []struct{ trigger, replacement string }{
		{";EMAIL", "test@example.com"},
		{"Email", "test@example.com"},
		{"email", "Test@Example.com"},
	}
	for _, c := range cases {
		once := propagateCase(c.trigger, c.replacement)
		twice := propagateCase(c.trigger, once)
		require.Equal(t, once, twice)
	}
}

func TestUnknownVariableLeftVerbatim(t *testing.T) {
	s := config.Snippet{Trigger: ";test", Replace: "{{bogus}}"}
	e := New(nil)
	res, err := e.Expand(matcher.Result{Snippet: s, TypedTrigger: ";test"})
	require.NoError(t, err)
	require.Equal(t, "{{bogus}}", res.Text)
}
