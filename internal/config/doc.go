// Package config is the single source of truth for converter configuration
// and file-system layout.
//
// Configuration is loaded from environment variables (prefix BATT) first,
// then merged with an optional config.yaml next to the executable; the
// environment wins. Paths are always resolved relative to the executable
// directory, never the working directory, so the converter behaves the same
// whether launched from a shell or a scheduler.
//
// Directory layout:
//
//	<executable dir>/
//	  ├── config.yaml        (optional)
//	  ├── data/
//	  │   ├── raw/           (B00NN.mat source archives)
//	  │   └── processed/     (generated tabular datasets)
//	  └── logs/
package config
