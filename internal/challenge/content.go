package challenge

import "time"

type Mantra struct {
	Text        string
	Translation string
	Meaning     string
}

// Content is the mantra and quote shown for a calendar date.
type Content struct {
	Mantra Mantra
	Quote  string
}

var Mantras = []Mantra{
	{
		Text:        "ॐ नमः शिवाय",
		Translation: "Om Namah Shivaya - I bow to Shiva",
		Meaning:     "This mantra is dedicated to Lord Shiva and signifies the unity of individual consciousness with the supreme consciousness.",
	},
	{
		Text:        "ॐ गं गणपतये नमः",
		Translation: "Om Gam Ganapataye Namaha",
		Meaning:     "This mantra is dedicated to Lord Ganesha, the remover of obstacles and patron of arts and sciences.",
	},
	{
		Text:        "हरे कृष्ण हरे कृष्ण, कृष्ण कृष्ण हरे हरे, हरे राम हरे राम, राम राम हरे हरे",
		Translation: "Hare Krishna Hare Krishna, Krishna Krishna Hare Hare, Hare Rama Hare Rama, Rama Rama Hare Hare",
		Meaning:     "This mantra invokes the energy of divine love and devotion.",
	},
	{
		Text:        "ॐ मणि पद्मे हूँ",
		Translation: "Om Mani Padme Hum",
		Meaning:     "The jewel in the lotus; this mantra embodies the compassion of all Buddhas.",
	},
	{
		Text:        "ॐ श्री गुरुभ्यो नमः",
		Translation: "Om Sri Gurubhyo Namaha",
		Meaning:     "I offer my respectful obeisances unto the spiritual masters.",
	},
}

var Quotes = []string{
	"Silence is the language of God, all else is poor translation.",
	"When you repeat the name of God, it creates a sacred vibration in your being.",
	"Mantras are like spiritual passwords; they help us access higher states of consciousness.",
	"Your breath is the bridge between your body and mind - use it to carry the divine name.",
	"In the repetition of a mantra, you find the eternal in the moment.",
	"Chanting is a way of getting in touch with yourself; it's an exploration of your spiritual heart.",
	"When mind, breath, and mantra become one, that is true meditation.",
}

// DailyContent picks the mantra and quote for t's date. Both are seeded by
// year+month+day; the quote uses a different multiplier so the two rotate
// independently.
func DailyContent(t time.Time) Content {
	seed := t.Year() + int(t.Month()) + t.Day()
	return Content{
		Mantra: Mantras[seed%len(Mantras)],
		Quote:  Quotes[(seed*13)%len(Quotes)],
	}
}
