package scrollback

// Tail returns the last max(1, height) lines of the snapshot, preserving
// order. When the snapshot has fewer lines than the viewport, all of them
// are returned. Tail is a pure function: identical inputs always yield
// identical output, so the render loop may call it on every tick.
func Tail(lines []string, height int) []string {
	if height < 1 {
		height = 1
	}
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}
