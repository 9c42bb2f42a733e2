package prefix

import (
	"github.com/de-tools/log-enricher/pkg/models/domain"
)

const databaseLogGroupRoot = "/aws/rds/instance/"

var prefixes = map[domain.Environment]domain.PrefixSet{
	domain.EnvironmentDevelopment: {
		Database:      "cg-aws-broker-dev",
		SearchDomain:  "cg-broker-dev-",
		ObjectStorage: "development-cg-",
	},
	domain.EnvironmentStaging: {
		Database:      "cg-aws-broker-stage",
		SearchDomain:  "cg-broker-stg-",
		ObjectStorage: "staging-cg-",
	},
	domain.EnvironmentProduction: {
		Database:      "cg-aws-broker-prod",
		SearchDomain:  "cg-broker-prd-",
		ObjectStorage: "cg-",
	},
}

// Derive returns the naming prefixes that identify resources provisioned in
// the given environment.
func Derive(environment string) (domain.PrefixSet, error) {
	env, err := domain.ParseEnvironment(environment)
	if err != nil {
		return domain.PrefixSet{}, err
	}
	return prefixes[env], nil
}

// DatabaseLogGroupPrefix is the CloudWatch log group prefix of database
// instances owned by the environment.
func DatabaseLogGroupPrefix(set domain.PrefixSet) string {
	return databaseLogGroupRoot + set.Database
}
