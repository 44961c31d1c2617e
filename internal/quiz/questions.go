package quiz

// Questions is the fixed ten-question mood quiz. Option points range from -5
// to +5, so totals land in [-47, 47] across the nine vibe bands.
var Questions = []Question{
	{
		ID:       1,
		Question: "How are you feeling about your day so far?",
		Options: []Option{
			{"Amazing! Everything's going perfectly", 5},
			{"Pretty good, mostly positive", 3},
			{"It's okay, nothing special", 0},
			{"Not great, having some issues", -3},
			{"Terrible, worst day ever", -5},
		},
	},
	{
		ID:       2,
		Question: "How would you describe your energy level?",
		Options: []Option{
			{"Super energetic and ready for anything", 5},
			{"Good energy, feeling motivated", 3},
			{"Average, could go either way", 0},
			{"Low energy, feeling sluggish", -3},
			{"Completely drained and exhausted", -5},
		},
	},
	{
		ID:       3,
		Question: "How do you feel about your relationships today?",
		Options: []Option{
			{"Connected and loved by everyone", 4},
			{"Good vibes with most people", 2},
			{"Normal interactions, nothing special", 0},
			{"Some tension or misunderstandings", -2},
			{"Feeling isolated or in conflict", -4},
		},
	},
	{
		ID:       4,
		Question: "What's your outlook on the future right now?",
		Options: []Option{
			{"Extremely optimistic and excited", 5},
			{"Generally positive about what's coming", 3},
			{"Neutral, taking things as they come", 0},
			{"A bit worried about upcoming challenges", -3},
			{"Very anxious or pessimistic", -5},
		},
	},
	{
		ID:       5,
		Question: "How creative or inspired do you feel?",
		Options: []Option{
			{"Bursting with creative ideas", 4},
			{"Pretty inspired and imaginative", 2},
			{"Average creativity level", 0},
			{"Feeling a bit blocked or uninspired", -2},
			{"Completely creatively stuck", -4},
		},
	},
	{
		ID:       6,
		Question: "How comfortable are you in your own skin today?",
		Options: []Option{
			{"Completely confident and self-assured", 5},
			{"Feeling pretty good about myself", 3},
			{"Normal self-confidence", 0},
			{"A bit insecure or self-doubting", -3},
			{"Very uncomfortable with myself", -5},
		},
	},
	{
		ID:       7,
		Question: "How much do you want to socialize right now?",
		Options: []Option{
			{"Want to party and meet everyone", 4},
			{"Would enjoy some good company", 2},
			{"Take it or leave it", 0},
			{"Prefer to keep interactions minimal", -2},
			{"Want to avoid people completely", -4},
		},
	},
	{
		ID:       8,
		Question: "How do you feel about taking on new challenges?",
		Options: []Option{
			{"Bring it on! Ready for anything", 5},
			{"Generally up for new experiences", 3},
			{"Depends on the challenge", 0},
			{"Prefer to stick to familiar things", -3},
			{"Want to avoid any challenges", -5},
		},
	},
	{
		ID:       9,
		Question: "What's your stress level like today?",
		Options: []Option{
			{"Completely relaxed and zen", 5},
			{"Pretty calm with minor stress", 3},
			{"Normal stress levels", 0},
			{"Feeling quite stressed", -3},
			{"Extremely overwhelmed", -5},
		},
	},
	{
		ID:       10,
		Question: "How grateful do you feel for your life right now?",
		Options: []Option{
			{"Incredibly grateful for everything", 5},
			{"Pretty appreciative of what I have", 3},
			{"Normal level of gratitude", 0},
			{"Not feeling very thankful today", -3},
			{"Feeling ungrateful or resentful", -5},
		},
	},
}
