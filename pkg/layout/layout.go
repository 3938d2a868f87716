// Package layout computes 2D node positions for topology charts.
// All algorithms are deterministic for identical inputs and seeds.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/gridmind-ai/gridmind/backend/pkg/topo"
)

// DefaultSeed is the seed callers use unless they ask for something else.
const DefaultSeed = 42

// DefaultIterations is the force-simulation length for Spring.
const DefaultIterations = 50

// Positions maps node names to 2D coordinates.
type Positions map[string][2]float64

// Circular places nodes on the unit circle in list order.
func Circular(nodes []string) Positions {
	n := len(nodes)
	pos := make(Positions, n)
	for i, name := range nodes {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[name] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}

	return pos
}

// Random places nodes uniformly in the unit square, seeded.
func Random(nodes []string, seed int64) Positions {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))

	pos := make(Positions, len(nodes))
	for _, name := range nodes {
		pos[name] = [2]float64{rng.Float64(), rng.Float64()}
	}

	return pos
}

// Spring runs a Fruchterman-Reingold force simulation. Nodes start at seeded
// random positions, repel each other with k²/d and attract along edges with
// d²/k, under a linearly cooling displacement cap. The result is rescaled to
// the [-1, 1] square.
func Spring(nodes []string, edges []topo.Edge, seed int64, iterations int) Positions {
	n := len(nodes)
	if n == 0 {
		return Positions{}
	}
	if n == 1 {
		return Positions{nodes[0]: {0, 0}}
	}
	if iterations <= 0 {
		iterations = DefaultIterations
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	pos := make([][2]float64, n)
	for i := range pos {
		pos[i] = [2]float64{rng.Float64(), rng.Float64()}
	}

	pairs := edgeIndex(nodes, edges)
	k := math.Sqrt(1.0 / float64(n))

	temp := 0.1 * extent(pos)
	if temp == 0 {
		temp = 0.1
	}
	cool := temp / float64(iterations+1)

	disp := make([][2]float64, n)
	for range iterations {
		for i := range disp {
			disp[i] = [2]float64{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := pos[i][0] - pos[j][0]
				dy := pos[i][1] - pos[j][1]
				d := math.Hypot(dx, dy)
				if d < 0.01 {
					d = 0.01
				}
				f := k * k / d
				ux, uy := dx/d, dy/d
				disp[i][0] += ux * f
				disp[i][1] += uy * f
				disp[j][0] -= ux * f
				disp[j][1] -= uy * f
			}
		}

		for _, p := range pairs {
			dx := pos[p[0]][0] - pos[p[1]][0]
			dy := pos[p[0]][1] - pos[p[1]][1]
			d := math.Hypot(dx, dy)
			if d < 0.01 {
				d = 0.01
			}
			f := d * d / k
			ux, uy := dx/d, dy/d
			disp[p[0]][0] -= ux * f
			disp[p[0]][1] -= uy * f
			disp[p[1]][0] += ux * f
			disp[p[1]][1] += uy * f
		}

		for i := range pos {
			d := math.Hypot(disp[i][0], disp[i][1])
			if d < 1e-9 {
				continue
			}
			step := math.Min(d, temp)
			pos[i][0] += disp[i][0] / d * step
			pos[i][1] += disp[i][1] / d * step
		}

		temp -= cool
		if temp <= 0 {
			break
		}
	}

	return rescaled(nodes, pos)
}

// KamadaKawai arranges nodes so that geometric distances approximate graph
// distances, via stress majorization from a circular start. Unreachable node
// pairs are treated as one hop farther than the graph diameter.
func KamadaKawai(nodes []string, edges []topo.Edge) Positions {
	n := len(nodes)
	if n == 0 {
		return Positions{}
	}
	if n == 1 {
		return Positions{nodes[0]: {0, 0}}
	}

	dist := graphDistances(nodes, edges)

	pos := make([][2]float64, n)
	for i := range pos {
		angle := 2 * math.Pi * float64(i) / float64(n)
		pos[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}

	const (
		maxIterations = 300
		tolerance     = 1e-4
	)

	for range maxIterations {
		next := make([][2]float64, n)
		for i := 0; i < n; i++ {
			var sx, sy, sw float64
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				d := dist[i][j]
				w := 1 / (d * d)
				dx := pos[i][0] - pos[j][0]
				dy := pos[i][1] - pos[j][1]
				norm := math.Hypot(dx, dy)
				if norm < 1e-9 {
					norm = 1e-9
				}
				sx += w * (pos[j][0] + d*dx/norm)
				sy += w * (pos[j][1] + d*dy/norm)
				sw += w
			}
			next[i] = [2]float64{sx / sw, sy / sw}
		}

		moved := 0.0
		for i := range pos {
			moved += math.Hypot(next[i][0]-pos[i][0], next[i][1]-pos[i][1])
		}
		pos = next
		if moved/float64(n) < tolerance {
			break
		}
	}

	return rescaled(nodes, pos)
}

// edgeIndex resolves edges to index pairs, skipping self loops and edges
// naming unknown nodes.
func edgeIndex(nodes []string, edges []topo.Edge) [][2]int {
	index := make(map[string]int, len(nodes))
	for i, name := range nodes {
		index[name] = i
	}

	pairs := make([][2]int, 0, len(edges))
	for _, e := range edges {
		si, sok := index[e.Src]
		di, dok := index[e.Dst]
		if !sok || !dok || si == di {
			continue
		}
		pairs = append(pairs, [2]int{si, di})
	}

	return pairs
}

// graphDistances computes all-pairs hop counts by BFS from every node.
// Unreachable pairs get max finite distance + 1.
func graphDistances(nodes []string, edges []topo.Edge) [][]float64 {
	n := len(nodes)

	adj := make([][]int, n)
	for _, p := range edgeIndex(nodes, edges) {
		adj[p[0]] = append(adj[p[0]], p[1])
		adj[p[1]] = append(adj[p[1]], p[0])
	}

	dist := make([][]float64, n)
	maxFinite := 1.0
	for src := 0; src < n; src++ {
		row := make([]float64, n)
		for i := range row {
			row[i] = -1
		}
		row[src] = 0

		queue := []int{src}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if row[next] >= 0 {
					continue
				}
				row[next] = row[cur] + 1
				if row[next] > maxFinite {
					maxFinite = row[next]
				}
				queue = append(queue, next)
			}
		}
		dist[src] = row
	}

	for i := range dist {
		for j := range dist[i] {
			if dist[i][j] < 0 {
				dist[i][j] = maxFinite + 1
			}
		}
	}

	return dist
}

// rescaled centers positions on their mean and scales the largest coordinate
// magnitude to 1.
func rescaled(nodes []string, pos [][2]float64) Positions {
	var mx, my float64
	for _, p := range pos {
		mx += p[0]
		my += p[1]
	}
	mx /= float64(len(pos))
	my /= float64(len(pos))

	lim := 0.0
	for i := range pos {
		pos[i][0] -= mx
		pos[i][1] -= my
		lim = math.Max(lim, math.Max(math.Abs(pos[i][0]), math.Abs(pos[i][1])))
	}

	out := make(Positions, len(nodes))
	for i, name := range nodes {
		if lim > 0 {
			out[name] = [2]float64{pos[i][0] / lim, pos[i][1] / lim}
		} else {
			out[name] = [2]float64{0, 0}
		}
	}

	return out
}

func extent(pos [][2]float64) float64 {
	minX, maxX := pos[0][0], pos[0][0]
	minY, maxY := pos[0][1], pos[0][1]
	for _, p := range pos[1:] {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}

	return math.Max(maxX-minX, maxY-minY)
}
