package curve

import "sort"

// Key is one control point of a Keyframed curve. Tangents are slopes
// (dValue/dTime) entering and leaving the key.
type Key struct {
	Time       float64 `yaml:"time"`
	Value      float64 `yaml:"value"`
	InTangent  float64 `yaml:"in"`
	OutTangent float64 `yaml:"out"`
}

// Keyframed is a piecewise cubic Hermite curve. Before the first key and
// after the last one it holds the end values.
type Keyframed struct {
	keys []Key
}

func NewKeyframed(keys ...Key) *Keyframed {
	k := make([]Key, len(keys))
	copy(k, keys)
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
	return &Keyframed{keys: k}
}

// EaseInOutKeys returns the two-key curve with flat tangents, equal to
// EaseInOut on [0, 1].
func EaseInOutKeys() *Keyframed {
	return NewKeyframed(Key{Time: 0, Value: 0}, Key{Time: 1, Value: 1})
}

func (c *Keyframed) Evaluate(t float64) float64 {
	n := len(c.keys)
	if n == 0 {
		return 0
	}
	if t <= c.keys[0].Time {
		return c.keys[0].Value
	}
	if t >= c.keys[n-1].Time {
		return c.keys[n-1].Value
	}

	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t }) - 1
	k0, k1 := c.keys[i], c.keys[i+1]

	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}
	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s

	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
