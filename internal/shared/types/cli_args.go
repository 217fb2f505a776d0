package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile  string
	PlanPath    string
	OutputDir   string
	LogPath     string
	TransferDay int
	Timezone    string
	OutPath     string
}

// Overrides returns the subset of the arguments that override configuration.
func (a CLIArgs) Overrides() Config {
	return Config{
		PlanPath:    a.PlanPath,
		OutputDir:   a.OutputDir,
		LogPath:     a.LogPath,
		TransferDay: a.TransferDay,
		Timezone:    a.Timezone,
	}
}
