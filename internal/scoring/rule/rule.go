package rule

import (
	"indigo/internal/scoring"

	"github.com/google/cel-go/cel"
)

// Rule represents an admission rule for judge scores fetched from the score
// repository. The When field contains a CEL expression over the fields of a
// single judge score; an entry is admitted only if the expression is true.
// The CEL program is compiled when Init is called.
type Rule struct {
	// When — CEL expression defining the admission condition.
	// Must return a boolean value. Available variables: juryName (string),
	// score (double), comment (string, empty when absent).
	When string `yaml:"when"`
	// program — compiled CEL program used to evaluate the condition.
	program cel.Program
}

// NewJudgeScoreEnv creates a CEL environment exposing the fields of a judge
// score entry as typed variables for admission expressions.
func NewJudgeScoreEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("juryName", cel.StringType),
		cel.Variable("score", cel.DoubleType),
		cel.Variable("comment", cel.StringType),
	)
}

// Init compiles the string expression in the When field into an executable CEL
// program using the provided env environment.
// In case of syntax or semantic errors, returns the corresponding error.
// After successful initialization, the rule is ready for use in Admit.
func (r *Rule) Init(env *cel.Env) error {
	ast, iss := env.Parse(r.When)
	if iss.Err() != nil {
		return iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return iss.Err()
	}

	var err error
	r.program, err = env.Program(checked)
	if err != nil {
		return err
	}

	return nil
}

// Admit evaluates the compiled rule against the provided judge score entry.
// A nil comment is presented to the expression as an empty string.
// Returns true when the entry satisfies the condition. An evaluation error is
// returned to the caller; the caller decides whether the entry is kept.
func (r *Rule) Admit(entry scoring.JudgeScore) (bool, error) {
	comment := ""
	if entry.Comment != nil {
		comment = *entry.Comment
	}

	result, _, err := r.program.Eval(map[string]any{
		"juryName": entry.JudgeName,
		"score":    entry.Score,
		"comment":  comment,
	})
	if err != nil {
		return false, err
	}

	return result.Value() == true, nil
}
