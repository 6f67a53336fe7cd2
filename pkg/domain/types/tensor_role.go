package types

// TensorRole is the meaning assigned to a vision model output tensor
type TensorRole string

const (
	TensorRoleEmbedding TensorRole = "embedding"
	TensorRoleAttention TensorRole = "attention"
	TensorRolePooled    TensorRole = "pooled"
)

func (r TensorRole) String() string {
	return string(r)
}
