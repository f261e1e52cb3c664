package horoscope

import (
	"crypto/sha256"
	"encoding/binary"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// FallbackInput is what the local generator personalises with.
type FallbackInput struct {
	Name  string
	Sign  string
	Tone  string
	Natal string
}

var transits = []string{
	"Venus trine Mars", "Mercury retrograde", "Moon sextile Jupiter", "Sun square Saturn",
	"Mars conjunct Pluto", "Jupiter opposite Neptune", "Saturn sextile Uranus", "Moon trine Venus",
	"Sun conjunct Mercury", "Venus square Neptune", "Mars sextile Saturn", "Jupiter trine Sun",
}

type templateSet struct {
	openings []string
	advices  []string
	whys     []string
}

var seriousTemplates = templateSet{
	openings: []string{
		"{display}Today, {sign} energy is shaped by {transit}, especially as it interacts with your {feature}.",
		"{display}{sign} focus favors consistency and discipline, with {transit} influencing your {feature}.",
		"{display}Your {sign} instincts lean toward structure and follow-through, as {transit} activates your {feature}.",
		"{display}A grounded mood prevails for {sign}, thanks to {transit} and your {feature}.",
	},
	advices: []string{
		"Choose one small task and finish it — progress builds momentum, especially for your {feature}.",
		"Pick a single priority and complete it without multitasking; your {feature} will benefit.",
		"Commit to one simple routine and keep it clean and doable, honoring your {feature}.",
		"Focus on practical goals and avoid distractions; {transit} supports your {feature}.",
	},
	whys: []string{
		"{transit} brings clarity and rewards measured effort, especially for your {feature}.",
		"Clarity grows when your effort is focused and measured, activating your {feature}.",
		"Small, steady wins reduce friction and increase confidence in your {feature}.",
		"This keeps stress low and creates clear results to build on, especially under {transit} and your {feature}.",
	},
}

var inspirationalTemplates = templateSet{
	openings: []string{
		"{display}The stars nudge a quiet confidence in your {sign} nature today, as {transit} highlights your {feature}.",
		"{display}Your {sign} spark feels brighter, like a candle finding fresh air as {transit} energizes your {feature}.",
		"{display}A hopeful current runs through your {sign} spirit, inspired by {transit} and your {feature}.",
		"{display}Momentum builds for {sign} as {transit} opens new possibilities for your {feature}.",
	},
	advices: []string{
		"Try something that stretches you a little — a short, bold step will teach you more than a big plan, especially for your {feature}.",
		"Let a small brave action open the door to a bigger story; your {feature} is ready.",
		"Take one gentle leap and let it echo through your day, guided by your {feature}.",
		"Embrace change and let inspiration guide you; {transit} empowers your {feature}.",
	},
	whys: []string{
		"{transit} reveals strengths and reduces fear of failure, especially for your {feature}.",
		"Momentum arrives when you choose possibility over perfection, activating your {feature}.",
		"A tiny risk can light a path you did not know existed, especially with {transit} energizing your {feature}.",
		"Today is notable for {sign} because {transit} encourages growth in your {feature}.",
	},
}

var playfulTemplates = templateSet{
	openings: []string{
		"{display}Your {sign} vibe today is playful and a little impatient, with {transit} stirring your {feature}.",
		"{display}Your {sign} mood is mischievous, like it had too much coffee — blame {transit} for your {feature}!",
		"{display}Your {sign} energy is bouncy and slightly chaotic, thanks to {transit} and your {feature}.",
		"{display}A quirky twist for {sign} as {transit} adds excitement to your {feature}.",
	},
	advices: []string{
		"Do one unexpected, harmless thing that sparks joy — a tiny risk with upside for your {feature}.",
		"Try a small plot twist in your routine and see what it unlocks for your {feature}.",
		"Give yourself one goofy detour and keep the rest simple, honoring your {feature}.",
		"Let spontaneity lead the way and enjoy the ride; {transit} energizes your {feature}.",
	},
	whys: []string{
		"{transit} breaks routine and creates space for new opportunities in your {feature}.",
		"Surprise adds fuel to your momentum without derailing the day, especially for your {feature}.",
		"A playful shake-up makes the ordinary feel magnetic, especially with {transit} in play for your {feature}.",
		"Today is notable for {sign} because {transit} brings unexpected fun to your {feature}.",
	},
}

// templatesForTone picks the serious, inspirational or playful set.
func templatesForTone(tone string) templateSet {
	tone = strings.ToLower(tone)
	switch {
	case strings.Contains(tone, "serious"):
		return seriousTemplates
	case strings.Contains(tone, "inspir"):
		return inspirationalTemplates
	default:
		return playfulTemplates
	}
}

// DeriveSeed hashes the input together with now into a PCG seed.
func DeriveSeed(in FallbackInput, now time.Time) [2]uint64 {
	source := strings.Join([]string{
		in.Name, in.Sign, in.Tone, in.Natal, strconv.FormatInt(now.UnixNano(), 10),
	}, "|")
	sum := sha256.Sum256([]byte(source))
	return [2]uint64{
		binary.BigEndian.Uint64(sum[0:8]),
		binary.BigEndian.Uint64(sum[8:16]),
	}
}

// ComposeFallback builds the paragraph from rng. The same rng state and
// input always produce the same text.
func ComposeFallback(rng *rand.Rand, in FallbackInput) string {
	transit := pick(rng, transits)

	feature := "Ascendant in " + in.Sign
	if features := natalFeatures(in.Natal); len(features) > 0 {
		feature = pick(rng, features)
	}

	display := ""
	if in.Name != "" {
		display = in.Name + ", "
	}
	fill := strings.NewReplacer(
		"{display}", display,
		"{sign}", in.Sign,
		"{transit}", transit,
		"{feature}", feature,
	)

	set := templatesForTone(in.Tone)
	opening := fill.Replace(pick(rng, set.openings))
	advice := fill.Replace(pick(rng, set.advices))
	why := fill.Replace(pick(rng, set.whys))

	var b strings.Builder
	b.WriteString(opening)
	b.WriteString(" ")
	b.WriteString(advice)
	if in.Natal != "" {
		b.WriteString(" (")
		b.WriteString(in.Natal)
		b.WriteString(")")
	}
	b.WriteString(" ")
	b.WriteString(why)
	return b.String()
}

// GenerateFallback composes a paragraph seeded from the input and now.
func GenerateFallback(in FallbackInput, now time.Time) string {
	seed := DeriveSeed(in, now)
	return ComposeFallback(rand.New(rand.NewPCG(seed[0], seed[1])), in)
}

func natalFeatures(natal string) []string {
	var out []string
	for _, part := range strings.Split(natal, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func pick(rng *rand.Rand, options []string) string {
	return options[rng.IntN(len(options))]
}
