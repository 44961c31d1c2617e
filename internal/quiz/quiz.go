// Package quiz holds the mood quiz content and the score-to-vibe mapping.
package quiz

// Option is one selectable answer with its score contribution.
type Option struct {
	Text   string `json:"text"`
	Points int    `json:"points"`
}

// Question is a single quiz prompt.
type Question struct {
	ID       uint     `json:"id"`
	Question string   `json:"question"`
	Options  []Option `json:"options"`
}

// Vibe is the label a total quiz score maps to, with its display tokens.
type Vibe struct {
	Vibe  string `json:"vibe"`
	Emoji string `json:"emoji"`
	Color string `json:"color"`
}

// bands are ordered from highest threshold to lowest; the final entry is the
// catch-all so the mapping is total. Thresholds are part of the stored data
// contract (seeded vibes and history reference these labels) and must not
// drift.
var bands = []struct {
	min  int
	vibe Vibe
}{
	{35, Vibe{"Absolutely Radiant", "✨", "bg-yellow-400"}},
	{25, Vibe{"Super Positive", "😄", "bg-green-400"}},
	{15, Vibe{"Pretty Good", "😊", "bg-blue-400"}},
	{5, Vibe{"Decent", "🙂", "bg-teal"}},
	{-5, Vibe{"Neutral", "😐", "bg-gray-400"}},
	{-15, Vibe{"Meh", "😕", "bg-orange-400"}},
	{-25, Vibe{"Not Great", "😞", "bg-red-400"}},
	{-35, Vibe{"Pretty Low", "😢", "bg-purple-400"}},
}

var rockBottom = Vibe{"Rock Bottom", "😭", "bg-black"}

// VibeFromScore maps a total quiz score to its vibe band. The mapping is
// total: every integer lands in exactly one band, with boundary scores
// assigned to the upper band (35 is Absolutely Radiant, 34 is Super
// Positive).
func VibeFromScore(totalScore int) Vibe {
	for _, b := range bands {
		if totalScore >= b.min {
			return b.vibe
		}
	}
	return rockBottom
}

// Labels returns every vibe label from best to worst.
func Labels() []string {
	out := make([]string, 0, len(bands)+1)
	for _, b := range bands {
		out = append(out, b.vibe.Vibe)
	}
	return append(out, rockBottom.Vibe)
}
