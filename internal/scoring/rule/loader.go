package rule

import (
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFromFile reads admission rules from a YAML file and compiles each of
// them against a fresh judge-score environment.
//
// The file must contain a list of rules in the format:
//
//   - when: "score >= 0.0 && score <= 10.0"
//
// Returns the compiled rules or an error if the file cannot be read, the YAML
// is malformed, or one of the expressions fails to compile.
func LoadFromFile(file string) ([]Rule, error) {
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	rules := []Rule{}
	err = yaml.Unmarshal(content, &rules)
	if err != nil {
		return nil, err
	}

	for i := range rules {
		env, err := NewJudgeScoreEnv()
		if err != nil {
			return nil, err
		}

		err = rules[i].Init(env)
		if err != nil {
			return nil, err
		}
	}

	return rules, nil
}
