package website

// Logical output names published by the provisioning engine for each website
// instance. The coordinator resolves identifiers through these names only;
// the resources themselves are owned by the provisioning layer.
const (
	OutputBucketName     = "bucketName"
	OutputDomain         = "domain"
	OutputCNAME          = "cname"
	OutputDistributionID = "distributionId"
)

// QualifiedOutput returns the stack-output key for one output of one website
// instance, so several instances can share a stack's output store.
func QualifiedOutput(site, output string) string {
	if site == "" {
		site = "website"
	}
	return site + "." + output
}
