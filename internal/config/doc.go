// Package config loads editor settings from TOML or YAML files.
//
// Settings are read over the built-in defaults, so a file only needs the
// keys it changes. Unknown keys are rejected. After the file, TEXTCORE_*
// environment variables override individual settings:
//
//	TEXTCORE_TAB_WIDTH     editor.tab_width
//	TEXTCORE_LINE_SPACING  editor.line_spacing
//	TEXTCORE_UNDO_LIMIT    editor.undo_limit
//	TEXTCORE_LOG_LEVEL     log.level
//	TEXTCORE_LOG_FILE      log.file
//
// # Basic Usage
//
//	cfg, err := config.Load("textcore.toml")
//	if err != nil {
//	    return err
//	}
//	doc := engine.New(cfg.DocumentOptions()...)
//
// # Live Reload
//
// Watch reloads the file after it changes:
//
//	err := config.Watch(ctx, path, 0, func(cfg *config.Config, err error) {
//	    if err == nil {
//	        cfg.ApplyTo(doc)
//	    }
//	})
package config
