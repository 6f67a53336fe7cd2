package vision

import (
	"strings"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

// Roles holds the output tensors identified by IdentifyTensors. A nil
// field means the role was not found.
type Roles struct {
	Embedding *model.Tensor
	Attention *model.Tensor
	Pooled    *model.Tensor
}

// Empty reports whether no role was identified.
func (r Roles) Empty() bool {
	return r.Embedding == nil && r.Attention == nil && r.Pooled == nil
}

// IdentifyTensors assigns roles by name and shape first: the first rank-3
// tensor is the patch embedding, a rank-1/2 tensor named like "att" is the
// attention and a rank-2 tensor named like "pool" is the pooled vector.
// Roles still missing fall back to output order: embedding is the 1st
// output if rank 3, attention the 2nd, pooled the 3rd.
func IdentifyTensors(outputs model.ModelOutputs) Roles {
	var roles Roles
	used := make(map[int]bool, len(outputs))

	for i := range outputs {
		t := &outputs[i]
		name := strings.ToLower(t.Name)
		switch {
		case t.Rank() == 3 && roles.Embedding == nil:
			roles.Embedding = t
			used[i] = true
		case (t.Rank() == 1 || t.Rank() == 2) && strings.Contains(name, "att") && roles.Attention == nil:
			roles.Attention = t
			used[i] = true
		case t.Rank() == 2 && strings.Contains(name, "pool") && roles.Pooled == nil:
			roles.Pooled = t
			used[i] = true
		}
	}

	if roles.Embedding == nil && len(outputs) > 0 && !used[0] && outputs[0].Rank() == 3 {
		roles.Embedding = &outputs[0]
		used[0] = true
	}
	if roles.Attention == nil && len(outputs) > 1 && !used[1] {
		roles.Attention = &outputs[1]
		used[1] = true
	}
	if roles.Pooled == nil && len(outputs) > 2 && !used[2] {
		roles.Pooled = &outputs[2]
	}
	return roles
}
