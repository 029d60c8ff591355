package config

import "github.com/spf13/viper"

// Workspace calculation directory config struct
type Workspace struct {
	Root    string
	Uploads string
}

func getWorkspaceConfig(v *viper.Viper) *Workspace {
	return &Workspace{
		Root:    v.GetString("workspace.root"),
		Uploads: v.GetString("workspace.uploads"),
	}
}
