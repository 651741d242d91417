// Package challenge picks the date-seeded daily and monthly challenges, the
// mantra and quote of the day, and records challenge completion.
package challenge

import "time"

type Category string

const (
	CategoryMantra      Category = "mantra"
	CategoryMeditation  Category = "meditation"
	CategoryMindfulness Category = "mindfulness"
	CategoryDevotion    Category = "devotion"
)

// Challenge is an immutable catalog entry. TargetCount is zero when the
// challenge has no repetition target. Difficulty runs from 1 (easy) to 3.
type Challenge struct {
	ID          string
	Title       string
	Description string
	Category    Category
	TargetCount int
	Difficulty  int
}

// MonthlyChallenge is bound to one calendar month, 0 for January.
type MonthlyChallenge struct {
	Challenge
	Month int
}

// DailyPool rotates by date.
var DailyPool = []Challenge{
	{"om-108", "Sacred 108", "Chant Om Namah Shivaya 108 times with full concentration", CategoryMantra, 108, 2},
	{"morning-mantras", "Dawn Vibrations", "Chant any mantra of your choice for 10 minutes at sunrise", CategoryMantra, 0, 1},
	{"silent-meditation", "Inner Silence", "Practice 15 minutes of silent meditation focusing on the space between thoughts", CategoryMeditation, 0, 2},
	{"gratitude-practice", "Heart of Gratitude", "Mentally recite 21 things you're grateful for while chanting", CategoryMindfulness, 21, 1},
	{"continuous-chanting", "Unbroken Flow", "Chant continuously for 20 minutes without interruption", CategoryMantra, 0, 2},
	{"breath-mantra", "Breath Synchronization", "Synchronize your breath with 54 repetitions of a short mantra", CategoryMantra, 54, 2},
	{"visualization-practice", "Divine Visualization", "Visualize a deity or spiritual symbol while chanting 27 mantras", CategoryDevotion, 27, 1},
	{"walking-mantra", "Walking Meditation", "Recite mantras while walking mindfully for 10 minutes", CategoryMindfulness, 0, 1},
	{"selfless-service", "Karma Yoga", "Perform an act of service while mentally reciting a mantra", CategoryDevotion, 0, 1},
	{"evening-ritual", "Twilight Sadhana", "Create an evening ritual with 108 mantras before sleep", CategoryMantra, 108, 2},
	{"sound-silence", "Sound and Silence", "Alternate between chanting aloud and silent meditation for 15 minutes", CategoryMeditation, 0, 2},
	{"intention-setting", "Sacred Intention", "Set a specific intention and chant 54 mantras dedicated to it", CategoryMindfulness, 54, 2},
	{"mantra-writing", "Written Devotion", "Write a mantra 11 times while maintaining complete focus", CategoryDevotion, 11, 1},
	{"nature-connection", "Nature Harmony", "Practice mantras outdoors near a natural element for 10 minutes", CategoryMindfulness, 0, 1},
	{"deep-focus", "One-Pointed Focus", "Chant 51 mantras with complete concentration on each syllable", CategoryMantra, 51, 3},
	{"moon-meditation", "Lunar Reflection", "Meditate and chant under moonlight for 15 minutes", CategoryMeditation, 0, 2},
	{"compassion-mantra", "Boundless Compassion", "Recite a compassion mantra while visualizing love spreading to all beings", CategoryDevotion, 0, 2},
	{"dawn-chanting", "Brahma Muhurta", "Wake before sunrise and complete 108 mantras in the spiritually charged early hours", CategoryMantra, 108, 3},
	{"mantra-mala", "Complete Mala", "Use a mala to complete 108 repetitions with proper technique", CategoryMantra, 108, 2},
	{"mirror-mantra", "Mirror Practice", "Chant while looking into your own eyes in a mirror for 5 minutes", CategoryMindfulness, 0, 2},
	{"group-energy", "Collective Consciousness", "Connect energetically with other practitioners by chanting at the same time as others around the world", CategoryDevotion, 0, 1},
	{"elemental-mantras", "Five Elements", "Dedicate 21 mantras to each of the 5 elements (earth, water, fire, air, ether)", CategoryDevotion, 105, 3},
	{"chakra-focus", "Energy Centers", "Chant while focusing on each of your 7 chakras sequentially", CategoryMeditation, 0, 2},
	{"food-blessing", "Blessed Nourishment", "Chant mantras over your food before eating for the entire day", CategoryDevotion, 0, 1},
	{"dream-intention", "Conscious Dreaming", "Set an intention to remember your dreams while chanting 27 mantras before sleep", CategoryMeditation, 27, 2},
	{"heart-centered", "Heart Center", "Place your hand on your heart while chanting 108 mantras", CategoryMindfulness, 108, 2},
	{"sound-healing", "Healing Vibrations", "Direct mantras as healing energy to any part of your body that needs attention", CategoryMeditation, 0, 2},
	{"water-offering", "Sacred Offering", "Offer water to the sun while reciting 11 mantras", CategoryDevotion, 11, 1},
	{"digital-detox", "Sacred Disconnection", "Turn off all electronics and practice 30 minutes of mantra chanting", CategoryMindfulness, 0, 2},
	{"new-mantra", "New Vibration", "Learn and practice a mantra you've never chanted before", CategoryMantra, 0, 1},
}

// MonthlyTable holds one challenge per calendar month.
var MonthlyTable = []MonthlyChallenge{
	{Challenge{"january-new-beginnings", "New Year Intentions", "Set your spiritual intentions for the year with 108 mantras", CategoryMindfulness, 108, 2}, 0},
	{Challenge{"february-devotion", "Month of Devotion", "Practice bhakti (devotion) through 21 consecutive days of heartfelt chanting", CategoryDevotion, 0, 3}, 1},
	{Challenge{"march-equinox", "Balance of Light", "Celebrate the equinox with balancing mantras for 31 minutes", CategoryMeditation, 0, 2}, 2},
	{Challenge{"april-renewal", "Spring Renewal", "Purify your energy with 108 cleansing mantras", CategoryMantra, 108, 2}, 3},
	{Challenge{"may-abundance", "Flowering Abundance", "Practice abundance mantras while visualizing your life in full bloom", CategoryMindfulness, 0, 1}, 4},
	{Challenge{"june-light", "Solstice Light", "Honor the longest day with 108 sun salutations and mantras", CategoryDevotion, 108, 3}, 5},
	{Challenge{"july-guru", "Guru Purnima", "Honor your teachers and guides with gratitude mantras", CategoryDevotion, 0, 1}, 6},
	{Challenge{"august-discipline", "Tapas - Spiritual Heat", "Build spiritual discipline with 31 days of consistent practice", CategoryMantra, 0, 3}, 7},
	{Challenge{"september-harvest", "Spiritual Harvest", "Reflect on your spiritual growth with gratitude mantras", CategoryMindfulness, 0, 1}, 8},
	{Challenge{"october-inner-light", "Inner Lamp", "Illuminate your inner darkness with mantras of light", CategoryMeditation, 0, 2}, 9},
	{Challenge{"november-ancestral", "Ancestral Honoring", "Chant mantras dedicated to your ancestors and lineage", CategoryDevotion, 0, 2}, 10},
	{Challenge{"december-silence", "Sacred Silence", "Alternate between mantra chanting and periods of complete silence", CategoryMeditation, 0, 2}, 11},
}

// Daily returns the challenge for t's calendar date. The seed shifts by a
// flat 365 per year, so a date maps to a different entry each year.
func Daily(t time.Time) Challenge {
	seed := t.YearDay() + t.Year()*365
	return DailyPool[seed%len(DailyPool)]
}

// Monthly returns the challenge for t's calendar month.
func Monthly(t time.Time) MonthlyChallenge {
	return MonthlyTable[int(t.Month())-1]
}

// DifficultyLabel renders a 1-3 difficulty for display.
func DifficultyLabel(d int) string {
	switch d {
	case 1:
		return "easy"
	case 2:
		return "medium"
	case 3:
		return "hard"
	}
	return "unknown"
}
