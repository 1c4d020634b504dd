package main

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/bitmark-inc/mutual-aid-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("mutualaid")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	indexer := schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database"))
	indexer.IndexAll()
}
