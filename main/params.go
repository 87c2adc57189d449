// (c) 2019-2020, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ava-labs/rollupvm/rollupvm"
)

const (
	envPrefix = "ROLLUPVM"

	versionKey           = "version"
	httpHostKey          = "http-host"
	httpPortKey          = "http-port"
	dbTypeKey            = "db-type"
	dbDirKey             = "db-dir"
	logLevelKey          = "log-level"
	verifierCacheSizeKey = "verifier-cache-size"
	disputePeriodKey     = "dispute-period"

	memDBType   = "memdb"
	levelDBType = "leveldb"
)

type config struct {
	httpHost string
	httpPort uint16
	dbType   string
	dbDir    string
	logLevel string
	chain    rollupvm.Config
}

func buildFlagSet() *flag.FlagSet {
	defaults := rollupvm.DefaultConfig()
	fs := flag.NewFlagSet(rollupvm.Name, flag.ContinueOnError)

	fs.Bool(versionKey, false, "If true, prints Version and quit")
	fs.String(httpHostKey, "127.0.0.1", "Address of the HTTP server")
	fs.Uint(httpPortKey, 9650, "Port of the HTTP server")
	fs.String(dbTypeKey, levelDBType, fmt.Sprintf("Database type to use. Should be one of {%s, %s}", levelDBType, memDBType))
	fs.String(dbDirKey, "rollupvm-db", "Database directory")
	fs.String(logLevelKey, "info", "The log level. Should be one of {crit, error, warn, info, debug}")
	fs.Int(verifierCacheSizeKey, defaults.VerifierCacheSize, "Number of inclusion checks to remember. 0 disables caching")
	fs.Duration(disputePeriodKey, defaults.DisputePeriod, "How long a commitment can be disputed for. 0 never closes disputes")

	return fs
}

// getViper returns the viper environment for the binary
func getViper() (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	fs := buildFlagSet()
	pflag.CommandLine.AddGoFlagSet(fs)
	pflag.Parse()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		return nil, err
	}

	return v, nil
}

func getConfig(v *viper.Viper) (config, error) {
	port := v.GetUint(httpPortKey)
	if port > 65535 {
		return config{}, fmt.Errorf("%s is out of range: %d", httpPortKey, port)
	}
	cfg := config{
		httpHost: v.GetString(httpHostKey),
		httpPort: uint16(port),
		dbType:   v.GetString(dbTypeKey),
		dbDir:    v.GetString(dbDirKey),
		logLevel: v.GetString(logLevelKey),
		chain: rollupvm.Config{
			VerifierCacheSize: v.GetInt(verifierCacheSizeKey),
			DisputePeriod:     v.GetDuration(disputePeriodKey),
		},
	}
	if cfg.dbType != memDBType && cfg.dbType != levelDBType {
		return config{}, fmt.Errorf("unknown %s %q", dbTypeKey, cfg.dbType)
	}
	return cfg, cfg.chain.Validate()
}
