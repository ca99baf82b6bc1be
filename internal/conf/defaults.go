// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"
)

// DefaultRetentionDays is the fallback retention window for offline bundles
// when neither an explicit override nor a persisted preference is available.
const DefaultRetentionDays = 30

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("log.enabled", true)
	viper.SetDefault("log.path", "sitewarden.log")

	viper.SetDefault("remote.dsn", "")
	viper.SetDefault("remote.tables.headers", "inspections")
	viper.SetDefault("remote.tables.details", "inspection_details")
	viper.SetDefault("remote.tables.codes", "observation_codes")
	viper.SetDefault("remote.tables.persons", "persons")
	viper.SetDefault("remote.tables.reportview", "inspection_report_view")
	viper.SetDefault("remote.tables.sitelist", "site_list_view")

	viper.SetDefault("offline.path", "sites/")
	viper.SetDefault("offline.retention.debug", false)
	viper.SetDefault("offline.retention.keepdays", DefaultRetentionDays)
}
