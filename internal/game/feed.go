package game

const (
	feedMaxEntries = 16
	feedLifetime   = 45  // ticks a message stays on screen
	feedRise       = 0.8 // px per tick a message floats upward
)

// FeedMessage is a floating label such as "+20" above a broken bottle.
type FeedMessage struct {
	Text string
	X, Y float64
	Age  int
}

// Feed is a ring buffer of floating score messages. When full, the oldest
// message is overwritten.
type Feed struct {
	entries [feedMaxEntries]FeedMessage
	head    int
	count   int
}

// Add appends a message at (x, y).
func (f *Feed) Add(text string, x, y float64) {
	f.entries[f.head] = FeedMessage{Text: text, X: x, Y: y}
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Age advances every message one tick and forgets the expired ones. Messages
// expire in insertion order, so only the tail of the ring needs trimming.
func (f *Feed) Age() {
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		f.entries[idx].Age++
	}
	for f.count > 0 {
		oldest := (f.head - f.count + feedMaxEntries) % feedMaxEntries
		if f.entries[oldest].Age < feedLifetime {
			break
		}
		f.count--
	}
}

// Active returns live messages, oldest first.
func (f *Feed) Active() []FeedMessage {
	out := make([]FeedMessage, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		out[i] = f.entries[idx]
	}
	return out
}

// Reset forgets every message.
func (f *Feed) Reset() { *f = Feed{} }
