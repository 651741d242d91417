package reminder

const Title = "ॐ नाम जप ॐ"

const testBody = "This is a test notification. Your reminders will look like this."

var generalMessages = []string{
	"Time for your daily mantra practice. ॐ नमः शिवाय",
	"Your soul is calling. Take a moment for your mantra practice.",
	"Peace awaits in the silence of your mantra recitation.",
	"A few moments of mantra practice can transform your entire day.",
	"Remember to connect with your spiritual self through mantra today.",
	"Your daily mantra awaits. Find a quiet moment to practice.",
	"Divine energy flows through the chanting of sacred mantras.",
	"ॐ - The universe is calling you to your daily practice.",
	"Spiritual growth happens one mantra at a time.",
	"Center yourself with your daily mantra practice.",
}

var morningMessages = []string{
	"Begin your day with spiritual intention. Time for your morning mantras.",
	"Let your mantra practice set the tone for a peaceful day.",
	"Greet the sun with the sacred sound of your mantra.",
	"Morning is the perfect time to connect with your higher self through mantras.",
}

var eveningMessages = []string{
	"Close your day with the sacred vibrations of your mantra practice.",
	"Before rest, take time to reconnect through mantra chanting.",
	"Evening mantras help release the day's tensions and prepare for peaceful rest.",
	"Complete your spiritual circle with evening mantra practice.",
}

// messagesFor returns the rotation for one time of day: the specific
// messages first, then the general ones.
func messagesFor(morning bool) []string {
	specific := eveningMessages
	if morning {
		specific = morningMessages
	}
	out := make([]string, 0, len(specific)+len(generalMessages))
	out = append(out, specific...)
	return append(out, generalMessages...)
}
