package resources

import (
	"embed"

	"fyne.io/fyne/v2"
)

//go:embed icons/app_256.png
var iconData []byte

func GetAppIcon() fyne.Resource {
	return &fyne.StaticResource{
		StaticName:    "app_256.png",
		StaticContent: iconData,
	}
}

// ConfigFiles holds the default settings under config/default.yaml.
//
//go:embed config/*.yaml
var ConfigFiles embed.FS
