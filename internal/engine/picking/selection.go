package picking

import "slices"

// Selection keeps the picked slots of the current and the previous frame in
// two buffers that swap roles on every Push.
type Selection struct {
	bufs [2][]int
	cur  int
}

// Push starts a new frame: the old current buffer becomes previous and hits
// are copied into the cleared current buffer.
func (s *Selection) Push(hits ...int) {
	s.cur ^= 1
	s.bufs[s.cur] = append(s.bufs[s.cur][:0], hits...)
}

// Current returns this frame's selection. The slice is reused by Push.
func (s *Selection) Current() []int {
	return s.bufs[s.cur]
}

// Previous returns the last frame's selection. The slice is reused by Push.
func (s *Selection) Previous() []int {
	return s.bufs[s.cur^1]
}

// Entered returns slots selected this frame but not the last.
func (s *Selection) Entered() []int {
	return diff(s.Current(), s.Previous())
}

// Left returns slots selected last frame but not this one.
func (s *Selection) Left() []int {
	return diff(s.Previous(), s.Current())
}

// Changed reports whether the selection differs from the last frame.
func (s *Selection) Changed() bool {
	return len(s.Entered()) > 0 || len(s.Left()) > 0
}

func diff(a, b []int) []int {
	var out []int
	for _, v := range a {
		if !slices.Contains(b, v) && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
