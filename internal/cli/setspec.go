package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/claude/repvault/internal/models"
)

// ParseSetSpec parses a logged set given as "Name:reps@weight" with an
// optional ":ss" suffix marking it part of a superset. Weight 0 means
// bodyweight. SetNumber is left for the caller to assign.
func ParseSetSpec(spec string) (models.SetEntry, error) {
	s := spec
	superset := false
	if strings.HasSuffix(s, ":ss") {
		superset = true
		s = strings.TrimSuffix(s, ":ss")
	}

	i := strings.LastIndex(s, ":")
	if i <= 0 || i == len(s)-1 {
		return models.SetEntry{}, fmt.Errorf("invalid set %q: want \"Name:reps@weight[:ss]\"", spec)
	}
	name := strings.TrimSpace(s[:i])
	if name == "" {
		return models.SetEntry{}, fmt.Errorf("invalid set %q: exercise name is empty", spec)
	}

	repsStr, weightStr, ok := strings.Cut(s[i+1:], "@")
	if !ok {
		return models.SetEntry{}, fmt.Errorf("invalid set %q: want \"Name:reps@weight[:ss]\"", spec)
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps <= 0 {
		return models.SetEntry{}, fmt.Errorf("invalid set %q: reps must be a positive integer", spec)
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil || weight < 0 {
		return models.SetEntry{}, fmt.Errorf("invalid set %q: weight must be a non-negative number", spec)
	}

	return models.SetEntry{
		ExerciseName: name,
		Reps:         reps,
		Weight:       weight,
		IsSuperset:   superset,
	}, nil
}

// SetSpecs collects repeated -set flags, numbering sets per exercise in
// the order given.
type SetSpecs []models.SetEntry

func (s *SetSpecs) String() string {
	parts := make([]string, len(*s))
	for i, e := range *s {
		parts[i] = fmt.Sprintf("%s:%d@%g", e.ExerciseName, e.Reps, e.Weight)
	}
	return strings.Join(parts, ",")
}

func (s *SetSpecs) Set(value string) error {
	entry, err := ParseSetSpec(value)
	if err != nil {
		return err
	}
	n := 1
	for _, e := range *s {
		if strings.EqualFold(e.ExerciseName, entry.ExerciseName) {
			n++
		}
	}
	entry.SetNumber = n
	*s = append(*s, entry)
	return nil
}
