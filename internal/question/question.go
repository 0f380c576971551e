package question

import (
	"encoding/json"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// ID is an opaque question identifier. Source files may use numbers or
// strings; both are held as text.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("question id must be a string or a number: %s", data)
	}

	*id = ID(n.String())
	return nil
}

func (id *ID) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: question id must be a scalar", value.Line)
	}
	*id = ID(value.Value)
	return nil
}

// Question is a single pool entry. Fields the service does not interpret are
// kept in Extra and written back unchanged.
type Question struct {
	ID         ID             `json:"id" yaml:"id"`
	Difficulty string         `json:"difficulty" yaml:"difficulty"`
	Marks      int            `json:"marks" yaml:"marks"`
	Text       string         `json:"question,omitempty" yaml:"question,omitempty"`
	Options    []string       `json:"options,omitempty" yaml:"options,omitempty"`
	Extra      map[string]any `json:"-" yaml:",inline"`

	// numericID and hasText record the source shape so encoding writes the
	// record back as it was loaded.
	numericID bool
	hasText   bool
}

var knownFields = []string{"id", "difficulty", "marks", "question", "options"}

// questionFields has the same layout as Question without its JSON and YAML
// methods.
type questionFields Question

func (q *Question) UnmarshalJSON(data []byte) error {
	var fields questionFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var rest map[string]any
	if err := json.Unmarshal(data, &rest); err != nil {
		return err
	}
	_, fields.numericID = rest["id"].(float64)
	_, fields.hasText = rest["question"]
	for _, k := range knownFields {
		delete(rest, k)
	}
	if len(rest) > 0 {
		fields.Extra = rest
	}

	*q = Question(fields)
	return nil
}

func (q Question) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(q.Extra)+len(knownFields))
	for k, v := range q.Extra {
		out[k] = v
	}

	if q.numericID {
		out["id"] = json.Number(q.ID)
	} else {
		out["id"] = string(q.ID)
	}
	out["difficulty"] = q.Difficulty
	out["marks"] = q.Marks
	if q.Text != "" || q.hasText {
		out["question"] = q.Text
	}
	if q.Options != nil {
		out["options"] = q.Options
	}

	return json.Marshal(out)
}

func (q *Question) UnmarshalYAML(value *yaml.Node) error {
	var fields questionFields
	if err := value.Decode(&fields); err != nil {
		return err
	}

	if value.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(value.Content); i += 2 {
			switch value.Content[i].Value {
			case "id":
				node := value.Content[i+1]
				tag := node.ShortTag()
				fields.numericID = (tag == "!!int" || tag == "!!float") && json.Valid([]byte(node.Value))
			case "question":
				fields.hasText = true
			}
		}
	}

	*q = Question(fields)
	return nil
}

// Level returns the normalized difficulty label used for matching.
func (q Question) Level() string {
	return NormalizeDifficulty(q.Difficulty)
}

func (q Question) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.ID, validation.Required),
		validation.Field(&q.Difficulty, validation.Required),
		validation.Field(&q.Marks, validation.Required, validation.Min(1)),
	)
}

// NormalizeDifficulty folds a difficulty label for case-insensitive comparison.
func NormalizeDifficulty(label string) string {
	return strings.ToLower(label)
}

// TotalMarks sums the marks of the given questions.
func TotalMarks(questions []Question) int {
	total := 0
	for _, q := range questions {
		total += q.Marks
	}
	return total
}
