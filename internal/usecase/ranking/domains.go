package ranking

import "strings"

// AuthorityIndexDomain is the flagship general-statistics index. It is
// seeded separately from the batched sweep and carries its own bonus
// and off-topic penalty in scoring.
const AuthorityIndexDomain = "data.census.gov"

// PriorityDomains is the curated allowlist of government, research and
// non-profit hosts presumed to publish trustworthy primary-source data.
// Order matters: the batched sweep walks it front to back, so the most
// broadly useful hosts sit first. Changing the list requires a redeploy.
var PriorityDomains = []string{
	"data.census.gov",
	"census.gov",
	"bls.gov",
	"cdc.gov",
	"ers.usda.gov",
	"fns.usda.gov",
	"usda.gov",
	"hud.gov",
	"huduser.gov",
	"epa.gov",
	"noaa.gov",
	"usgs.gov",
	"nces.ed.gov",
	"ed.gov",
	"cms.gov",
	"samhsa.gov",
	"bjs.ojp.gov",
	"bts.gov",
	"transit.dot.gov",
	"droughtmonitor.unl.edu",
	"opportunityinsights.org",
	"countyhealthrankings.org",
	"feedingamerica.org",
	"prisonpolicy.org",
	"kff.org",
	"urban.org",
}

// IsPriorityDomain reports whether hostname is on the allowlist,
// either exactly or as a sub-domain of an entry.
func IsPriorityDomain(hostname string) bool {
	hostname = strings.ToLower(hostname)
	for _, entry := range PriorityDomains {
		if hostname == entry || strings.HasSuffix(hostname, "."+entry) {
			return true
		}
	}
	return false
}
