package journey

import (
	"github.com/dabke-research/sumgraph/pkg/apperror"
)

// Path walks the predecessor chain in result from target back to
// result.Source and returns the vertices in traversal order (source
// first). Returns CodeUnknownVertex if target is not a vertex of the
// solved graph (it has no entry in result.Arrival). If
// target has no predecessor (π(target) = ⊥), the path is empty — this is
// the expected shape for a vertex the solver never reached, not an error.
// CodeBrokenPredecessorChain is reserved for a chain that starts but then
// hits a missing predecessor before reaching the source, or fails to
// terminate within len(result.Arrival) steps — both invariant violations.
func Path(result *Result, target string) ([]string, error) {
	if _, ok := result.Arrival[target]; !ok {
		return nil, apperror.NewWithField(apperror.CodeUnknownVertex, "target vertex not present in result", target)
	}
	if target == result.Source {
		return []string{result.Source}, nil
	}
	if _, ok := result.Predecessor[target]; !ok {
		return []string{}, nil
	}

	maxSteps := len(result.Arrival) + 1
	var reversed []string
	cur := target
	for i := 0; i < maxSteps; i++ {
		reversed = append(reversed, cur)
		if cur == result.Source {
			return reverse(reversed), nil
		}
		prev, ok := result.Predecessor[cur]
		if !ok {
			return nil, apperror.NewWithField(apperror.CodeBrokenPredecessorChain,
				"predecessor chain does not reach the source", target)
		}
		cur = prev
	}

	return nil, apperror.NewWithField(apperror.CodeBrokenPredecessorChain,
		"predecessor chain exceeded vertex count without reaching the source", target)
}

func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
