package vision

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/NandhaKishorM/electron-app-heart/pkg/domain/model"
)

const (
	topFocusPatches   = 8
	topAnomalies      = 5
	anomalyZThreshold = 1.5
)

// Lead region lookup for a standard 3x4 twelve-lead print layout. This is
// a layout convention, not a measured mapping.
var (
	verticalBands   = [3]string{"upper", "middle", "lower"}
	horizontalBands = [4]string{"far-left", "center-left", "center-right", "far-right"}
	leadRegions     = [3][4]string{
		{"I", "aVR", "V1", "V4"},
		{"II", "aVL", "V2", "V5"},
		{"III", "aVF", "V3", "V6"},
	}
)

// RegionLabel names the coarse region of cell (row, col) in a size x size grid.
func RegionLabel(row, col, size int) string {
	v := min(row*3/size, 2)
	h := min(col*4/size, 3)
	return fmt.Sprintf("%s %s (~lead %s)", verticalBands[v], horizontalBands[h], leadRegions[v][h])
}

// Describe builds the narrative for the identified tensors. Sections whose
// tensor is missing are omitted; with none, NoOutputDescription is returned.
func Describe(roles Roles) string {
	var sections []string
	if roles.Pooled != nil && len(roles.Pooled.Data) > 0 {
		sections = append(sections, describePooled(roles.Pooled.Data))
	}
	if roles.Attention != nil {
		if grid := model.NewAttentionGrid(roles.Attention.Data); !grid.IsEmpty() {
			sections = append(sections, describeAttention(grid))
		}
	}
	if roles.Embedding != nil {
		if s := describeEmbedding(*roles.Embedding); s != "" {
			sections = append(sections, s)
		}
	}

	if len(sections) == 0 {
		return NoOutputDescription
	}
	return strings.Join(sections, "\n\n")
}

func describePooled(data []float32) string {
	n := float64(len(data))
	var sum, sq float64
	lo, hi := float64(data[0]), float64(data[0])
	positive := 0
	for _, v := range data {
		f := float64(v)
		sum += f
		sq += f * f
		lo = min(lo, f)
		hi = max(hi, f)
		if f > 0 {
			positive++
		}
	}
	mean := sum / n
	std := math.Sqrt(max(sq/n-mean*mean, 0))

	var sb strings.Builder
	sb.WriteString("## Global Feature Summary\n")
	fmt.Fprintf(&sb, "- Dimensions: %d\n", len(data))
	fmt.Fprintf(&sb, "- Mean: %.4f, Std: %.4f\n", mean, std)
	fmt.Fprintf(&sb, "- L2 energy: %.4f\n", math.Sqrt(sq))
	fmt.Fprintf(&sb, "- Range: [%.4f, %.4f]\n", lo, hi)
	fmt.Fprintf(&sb, "- Positive components: %.1f%%", 100*float64(positive)/n)
	return sb.String()
}

func describeAttention(grid model.AttentionGrid) string {
	n := len(grid.Cells)
	var sum float64
	lo, hi := float64(grid.Cells[0]), float64(grid.Cells[0])
	for _, c := range grid.Cells {
		f := float64(c)
		sum += f
		lo = min(lo, f)
		hi = max(hi, f)
	}
	mean := sum / float64(n)
	threshold := mean + 0.5*(hi-mean)

	high := 0
	for _, c := range grid.Cells {
		if float64(c) >= threshold {
			high++
		}
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		switch {
		case grid.Cells[a] > grid.Cells[b]:
			return -1
		case grid.Cells[a] < grid.Cells[b]:
			return 1
		default:
			return 0
		}
	})

	var sb strings.Builder
	sb.WriteString("## Attention Distribution\n")
	fmt.Fprintf(&sb, "- Patches: %d (%dx%d grid)\n", n, grid.Size, grid.Size)
	fmt.Fprintf(&sb, "- Mean: %.6f, Min: %.6f, Max: %.6f\n", mean, lo, hi)
	fmt.Fprintf(&sb, "- High-attention threshold: %.6f (%d patches, %.1f%%)\n", threshold, high, 100*float64(high)/float64(n))
	sb.WriteString("- Top Focus Patches:\n")
	for rank, idx := range order[:min(topFocusPatches, n)] {
		row, col := idx/grid.Size, idx%grid.Size
		fmt.Fprintf(&sb, "  %d. (row %d, col %d) value=%.6f region=%s\n",
			rank+1, row, col, grid.Cells[idx], RegionLabel(row, col, grid.Size))
	}

	shares := quadrantShares(grid)
	fmt.Fprintf(&sb, "- Quadrant energy: upper-left %.1f%%, upper-right %.1f%%, lower-left %.1f%%, lower-right %.1f%%",
		shares[0], shares[1], shares[2], shares[3])
	return sb.String()
}

// quadrantShares returns the percentage of squared attention in the
// upper-left, upper-right, lower-left and lower-right quadrants.
func quadrantShares(grid model.AttentionGrid) [4]float64 {
	var energy [4]float64
	half := grid.Size / 2
	var total float64
	for i, c := range grid.Cells {
		row, col := i/grid.Size, i%grid.Size
		q := 0
		if row >= half && half > 0 {
			q += 2
		}
		if col >= half && half > 0 {
			q++
		}
		e := float64(c) * float64(c)
		energy[q] += e
		total += e
	}

	var shares [4]float64
	if total == 0 {
		return shares
	}
	for i := range energy {
		shares[i] = 100 * energy[i] / total
	}
	return shares
}

func describeEmbedding(t model.Tensor) string {
	if t.Rank() != 3 || t.Dims[2] <= 0 {
		return ""
	}
	dim := int(t.Dims[2])
	patches := len(t.Data) / dim
	if patches == 0 {
		return ""
	}

	norms := make([]float64, patches)
	var sum float64
	for p := range patches {
		var sq float64
		for _, v := range t.Data[p*dim : (p+1)*dim] {
			sq += float64(v) * float64(v)
		}
		norms[p] = math.Sqrt(sq)
		sum += norms[p]
	}
	mean := sum / float64(patches)
	var variance float64
	for _, n := range norms {
		variance += (n - mean) * (n - mean)
	}
	std := math.Sqrt(variance / float64(patches))

	type anomaly struct {
		index int
		z     float64
	}
	var anomalies []anomaly
	if std > 0 {
		for i, n := range norms {
			if z := (n - mean) / std; math.Abs(z) > anomalyZThreshold {
				anomalies = append(anomalies, anomaly{index: i, z: z})
			}
		}
	}
	slices.SortStableFunc(anomalies, func(a, b anomaly) int {
		switch {
		case math.Abs(a.z) > math.Abs(b.z):
			return -1
		case math.Abs(a.z) < math.Abs(b.z):
			return 1
		default:
			return 0
		}
	})

	size := int(math.Floor(math.Sqrt(float64(patches))))
	var sb strings.Builder
	sb.WriteString("## Embedding Norm Anomaly Scan\n")
	fmt.Fprintf(&sb, "- Patches: %d, Dimensions: %d\n", patches, dim)
	fmt.Fprintf(&sb, "- Mean norm: %.4f, Std: %.4f\n", mean, std)
	fmt.Fprintf(&sb, "- Anomalies (|z| > %.1f): %d (%.1f%%)", anomalyZThreshold, len(anomalies), 100*float64(len(anomalies))/float64(patches))
	for rank, a := range anomalies[:min(topAnomalies, len(anomalies))] {
		row, col := a.index/size, a.index%size
		fmt.Fprintf(&sb, "\n  %d. (row %d, col %d) norm=%.4f z=%+.2f", rank+1, row, col, norms[a.index], a.z)
	}
	return sb.String()
}
