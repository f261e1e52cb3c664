package horoscope

import (
	"fmt"
	"strings"
	"time"

	"github.com/yanqian/ai-horoscope/internal/domain/astronomy"
)

const systemPrompt = "You are a highly creative, insightful, and original horoscope and life-advice writer. " +
	"Write horoscopes that are truly unique, surprising, and deeply personalized for each user, based on their birth chart and today's transits. " +
	"Avoid formulaic or generic phrasing—each response should feel fresh, imaginative, and tailored to the individual. " +
	"Let your language be vivid, poetic, and full of personality, matching the user's requested tone (funny, serious, inspirational, etc). " +
	"Draw inspiration from the user's chart and the current sky, but do not simply repeat facts—use them as creative fuel for your advice and perspective. " +
	"Each horoscope should be a single, flowing paragraph of 3-5 sentences, blending practical advice, emotional insight, and a sense of cosmic timing. " +
	"Never include headings, lists, metadata, or internal instructions. " +
	"Never provide medical, legal, or financial advice—if asked, gently redirect to general life wisdom. " +
	"Be empathetic, non-judgmental, and avoid definitive statements about health, safety, or diagnosis. " +
	"Make every reading feel like a one-of-a-kind message from the universe, not a template."

const instructions = "Instructions:\n" +
	"- Output exactly one plain-text paragraph (no headings, lists, or JSON).\n" +
	"- Produce 3-4 total sentences: 2-3 short, practical/advice-oriented sentences in the requested tone, then exactly one sentence briefly explaining why today is notable for the user.\n" +
	"- Include exactly one specific, simple action the user can take today (a single actionable suggestion).\n" +
	"- If a first name is provided, you may address the user once at the start (e.g., 'Alex, ...').\n" +
	"- Personalize using the natal summary and any astronomy data; avoid generic phrasing and reuse.\n" +
	"- Avoid medical, legal, or financial recommendations; if the user appears to request such guidance, decline gently and provide safe, general suggestions.\n" +
	"- Keep language concise, friendly, and non-judgmental.\n\n" +
	"Respond now with the requested text block."

const astronomyTimeLayout = "2006-01-02T15:04"

// PromptInput gathers everything the prompt mentions.
type PromptInput struct {
	Name          string
	Sign          string
	Birthday      time.Time
	BirthTime     string
	BirthLocation string
	Tone          string
	Natal         string
	Astronomy     astronomy.Snapshot
}

// BuildPrompt composes the system persona and the user block.
func BuildPrompt(in PromptInput) Prompt {
	var b strings.Builder
	fmt.Fprintf(&b, "User details:\n- Name: %s\n- Zodiac: %s\n- Birthday: %s\n",
		orUnknown(in.Name), in.Sign, in.Birthday.Format(time.DateOnly))
	if in.Natal != "" {
		fmt.Fprintf(&b, "Natal chart summary: %s\n\n", in.Natal)
	}
	if line := astronomyHighlights(in.Astronomy); line != "" {
		fmt.Fprintf(&b, "Astronomy today at the user's location: %s\n\n", line)
	}
	fmt.Fprintf(&b, "- Birth time: %s\n- Birth location: %s\n- Tone: %s\n\n",
		orUnknown(in.BirthTime), orUnknown(in.BirthLocation), in.Tone)
	b.WriteString(instructions)

	return Prompt{System: systemPrompt, User: b.String()}
}

func astronomyHighlights(snap astronomy.Snapshot) string {
	var bits []string
	if snap.Sunrise != nil {
		bits = append(bits, "sunrise "+snap.Sunrise.Format(astronomyTimeLayout))
	}
	if snap.Sunset != nil {
		bits = append(bits, "sunset "+snap.Sunset.Format(astronomyTimeLayout))
	}
	if snap.MoonPhase != nil {
		bits = append(bits, fmt.Sprintf("moon phase %g", *snap.MoonPhase))
	}
	return strings.Join(bits, ", ")
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "unknown"
	}
	return v
}
