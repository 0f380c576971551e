package allocator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/angeloszaimis/question-paper/internal/question"
)

// Share is the percentage of a paper's marks requested for one difficulty.
type Share struct {
	Difficulty string  `json:"difficulty"`
	Percentage float64 `json:"percentage"`
}

// Distribution is an ordered list of shares. Order matters: shares are filled
// in sequence and filling stops once the requested marks are used up.
type Distribution []Share

var errSum = validation.NewError("validation_distribution_sum", "distribution percentages must sum to 100")

// UnmarshalJSON decodes a {"difficulty": percentage} object keeping the key
// order of the input.
func (d *Distribution) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*d = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("difficulty distribution must be a JSON object")
	}

	shares := Distribution{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)

		var pct float64
		if err := dec.Decode(&pct); err != nil {
			return fmt.Errorf("percentage for %q: %w", key, err)
		}

		shares = append(shares, Share{Difficulty: key, Percentage: pct})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*d = shares
	return nil
}

func (d Distribution) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, s := range d {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(s.Difficulty)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.Percentage)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Sum returns the total of all percentages.
func (d Distribution) Sum() float64 {
	var sum float64
	for _, s := range d {
		sum += s.Percentage
	}
	return sum
}

// Validate checks every share and that the percentages add up to exactly 100.
// Labels must be unique ignoring case.
func (d Distribution) Validate() error {
	if len(d) == 0 {
		return validation.NewError("validation_distribution_empty", "distribution cannot be empty")
	}

	errs := validation.Errors{}
	seen := make(map[string]bool, len(d))

	for i, s := range d {
		key := s.Difficulty
		if key == "" {
			key = fmt.Sprintf("#%d", i)
		}

		err := validation.ValidateStruct(&s,
			validation.Field(&s.Difficulty, validation.Required),
			validation.Field(&s.Percentage, validation.Min(0.0), validation.Max(100.0)),
		)
		if err != nil {
			errs[key] = err
			continue
		}

		level := question.NormalizeDifficulty(s.Difficulty)
		if seen[level] {
			errs[key] = validation.NewError("validation_distribution_duplicate", "difficulty is listed more than once")
			continue
		}
		seen[level] = true
	}

	if len(errs) > 0 {
		return errs
	}

	if d.Sum() != 100 {
		return errSum
	}

	return nil
}
