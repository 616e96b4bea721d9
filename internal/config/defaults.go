package config

// Default returns the baseline configuration before file and environment
// overrides are applied.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: "~/.local/share/pawprint",
			Bind:    "127.0.0.1:8484",
		},
		TMDB: TMDB{
			BaseURL:  "https://api.themoviedb.org/3",
			Language: "en-US",
		},
		DTDD: DTDD{
			BaseURL:      "https://www.doesthedogdie.com",
			CacheTTLDays: 7,
		},
		Search: Search{
			TargetResults:    20,
			AnnotationBudget: 25,
			DefaultUserID:    1,
		},
		Logging: Logging{
			Format: "auto",
			Level:  "info",
		},
	}
}
