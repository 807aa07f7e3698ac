package snapshot

import "github.com/PrivacyLens/go-api/lens"

// AppendHistory pushes snap onto history, evicting from the front when the
// capacity is exceeded. Ordering stays oldest first, newest last. Truncation
// happens here, in the same step as the append, so the history never
// transiently exceeds the cap.
func AppendHistory(history []lens.Snapshot, snap lens.Snapshot, capacity int) []lens.Snapshot {
	history = append(history, snap)
	if capacity > 0 && len(history) > capacity {
		history = history[len(history)-capacity:]
	}
	return history
}
