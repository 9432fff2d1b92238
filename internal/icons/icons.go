// Package icons holds the closed weather-icon vocabulary shared between the
// summarizer's generation schema and the rendering layer. Both sides must
// consume this single enumeration; the vocabulary is never duplicated.
package icons

// Token identifies a weather-condition glyph.
type Token string

const (
	Cloud                Token = "cloud"
	CloudDrizzle         Token = "cloud-drizzle"
	CloudFog             Token = "cloud-fog"
	CloudHail            Token = "cloud-hail"
	CloudLightning       Token = "cloud-lightning"
	CloudMoon            Token = "cloud-moon"
	CloudMoonRain        Token = "cloud-moon-rain"
	CloudRain            Token = "cloud-rain"
	CloudRainWind        Token = "cloud-rain-wind"
	CloudSnow            Token = "cloud-snow"
	CloudSun             Token = "cloud-sun"
	CloudSunRain         Token = "cloud-sun-rain"
	Cloudy               Token = "cloudy"
	Moon                 Token = "moon"
	MoonStar             Token = "moon-star"
	Snowflake            Token = "snowflake"
	Sun                  Token = "sun"
	SunDim               Token = "sun-dim"
	SunMedium            Token = "sun-medium"
	SunMoon              Token = "sun-moon"
	SunSnow              Token = "sun-snow"
	ThermometerSnowflake Token = "thermometer-snowflake"
	ThermometerSun       Token = "thermometer-sun"
	Tornado              Token = "tornado"
	Umbrella             Token = "umbrella"
	Wind                 Token = "wind"
)

// Cards carry between MinPerCard and MaxPerCard icons.
const (
	MinPerCard = 1
	MaxPerCard = 5
)

// glyphs maps every token to its display glyph. The key set is the
// vocabulary; keep it in lock-step with the constants above.
var glyphs = map[Token]string{
	Cloud:                "☁️",
	CloudDrizzle:         "🌦️",
	CloudFog:             "🌫️",
	CloudHail:            "🌨️",
	CloudLightning:       "🌩️",
	CloudMoon:            "☁️🌙",
	CloudMoonRain:        "🌧️🌙",
	CloudRain:            "🌧️",
	CloudRainWind:        "🌧️💨",
	CloudSnow:            "🌨️",
	CloudSun:             "⛅",
	CloudSunRain:         "🌦️",
	Cloudy:               "☁️",
	Moon:                 "🌙",
	MoonStar:             "🌙✨",
	Snowflake:            "❄️",
	Sun:                  "☀️",
	SunDim:               "🌤️",
	SunMedium:            "☀️",
	SunMoon:              "🌗",
	SunSnow:              "🌨️☀️",
	ThermometerSnowflake: "🥶",
	ThermometerSun:       "🥵",
	Tornado:              "🌪️",
	Umbrella:             "☂️",
	Wind:                 "💨",
}

// ordered lists the vocabulary in the order advertised to the summarizer.
var ordered = []Token{
	Cloud, CloudDrizzle, CloudFog, CloudHail, CloudLightning, CloudMoon,
	CloudMoonRain, CloudRain, CloudRainWind, CloudSnow, CloudSun,
	CloudSunRain, Cloudy, Moon, MoonStar, Snowflake, Sun, SunDim,
	SunMedium, SunMoon, SunSnow, ThermometerSnowflake, ThermometerSun,
	Tornado, Umbrella, Wind,
}

// Vocabulary returns the closed token set as strings, for use in the
// generation constraint schema.
func Vocabulary() []string {
	out := make([]string, len(ordered))
	for i, t := range ordered {
		out[i] = string(t)
	}
	return out
}

// Valid reports whether t belongs to the vocabulary.
func Valid(t Token) bool {
	_, ok := glyphs[t]
	return ok
}

// Glyph returns the display glyph for a token.
func Glyph(t Token) (string, bool) {
	g, ok := glyphs[t]
	return g, ok
}

// Filter is the rendering guard: it drops tokens outside the vocabulary and
// never fails. Generative output is untrusted with respect to exact
// vocabulary adherence, so a card may legitimately end up with zero icons.
func Filter(raw []string) []Token {
	out := make([]Token, 0, len(raw))
	for _, s := range raw {
		if t := Token(s); Valid(t) {
			out = append(out, t)
		}
	}
	return out
}
