package main

import "github.com/spf13/viper"

// env is the process environment read once at command start. Commands
// thread it through as explicit values; the core never reads ambient
// state.
type env struct {
	// RunMode is REMIX_RUN_MODE: "development" or "production".
	RunMode string

	// Root is REMIX_ROOT: the project root directory.
	Root string
}

func readEnv() env {
	v := viper.New()
	v.SetEnvPrefix("REMIX")
	v.AutomaticEnv()
	v.SetDefault("run_mode", "development")
	v.SetDefault("root", ".")
	return env{
		RunMode: v.GetString("run_mode"),
		Root:    v.GetString("root"),
	}
}
