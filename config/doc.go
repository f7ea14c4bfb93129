// Package config holds the user-facing settings of the search engine.
//
// Settings are plain values populated from CLI flags or by the embedding
// program, then checked with Validate before the engine is built:
//
//	s := config.NewSettings(config.WithVaultPath(dir), config.WithScheme("xiaohe"))
//	if err := s.Validate(); err != nil {
//	    return err
//	}
package config
