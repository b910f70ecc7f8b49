// Package topology translates a validated website configuration into a
// provider-neutral description of the cloud resources backing the site: one
// private object-storage bucket, one CDN distribution fronting it through an
// origin-access identity, and a viewer-response function injecting security
// headers. The description is a value object; the host's provisioning engine
// consumes it and publishes the resulting identifiers as named stack outputs.
package topology

import (
	"fmt"

	"github.com/GoCodeAlone/staticsite/host"
	"github.com/GoCodeAlone/staticsite/website"
)

// DefaultCacheTTL is the default edge caching duration in seconds.
const DefaultCacheTTL = 3600

// MinimumTLSVersion is the minimum viewer TLS protocol for custom domains.
const MinimumTLSVersion = "TLSv1.1_2016"

// BucketSpec describes the content bucket. The bucket is never publicly
// reachable; only the distribution's origin-access identity may read it.
type BucketSpec struct {
	// Name is the bucket name, namespaced by stack and site.
	Name string `json:"name"`

	// ForceDestroy allows teardown of a non-empty bucket. Site content is
	// reproducible from the local directory, not a source of truth.
	ForceDestroy bool `json:"forceDestroy"`
}

// OriginAccessSpec describes the identity through which the distribution,
// and only the distribution, reads the private bucket.
type OriginAccessSpec struct {
	Comment string `json:"comment"`
}

// FunctionSpec describes the viewer-response function that injects security
// headers into every response served by the distribution.
type FunctionSpec struct {
	// Name is namespaced by stack, region, and site so multiple stacks can
	// coexist in one account.
	Name string `json:"name"`

	// EventType is the distribution event the function is associated with.
	EventType string `json:"eventType"`

	// Headers are the response headers the function injects.
	Headers map[string]string `json:"headers"`
}

// ErrorMappingSpec rewrites an origin error status to serve the SPA root
// document, so client-side routing works for deep links.
type ErrorMappingSpec struct {
	ErrorCode       int    `json:"errorCode"`
	ResponseCode    int    `json:"responseCode"`
	ResponsePath    string `json:"responsePath"`
	CacheTTLSeconds int    `json:"cacheTtlSeconds"`
}

// ViewerCertificateSpec binds an ACM certificate to the distribution for
// custom-domain HTTPS termination.
type ViewerCertificateSpec struct {
	CertificateARN    string   `json:"certificateArn"`
	Aliases           []string `json:"aliases"`
	MinimumTLSVersion string   `json:"minimumTlsVersion"`
	SSLSupportMethod  string   `json:"sslSupportMethod"`
}

// DistributionSpec describes the CDN distribution fronting the bucket.
type DistributionSpec struct {
	// Comment identifies the distribution in the provider console.
	Comment string `json:"comment"`

	// DefaultRootObject is served for the bare distribution root.
	DefaultRootObject string `json:"defaultRootObject"`

	// DefaultTTLSeconds is the default edge caching duration.
	DefaultTTLSeconds int `json:"defaultTtlSeconds"`

	// Compress enables gzip compression at the edge.
	Compress bool `json:"compress"`

	// RedirectToHTTPS forces viewers onto HTTPS.
	RedirectToHTTPS bool `json:"redirectToHttps"`

	// ErrorMappings are the SPA-friendly error rewrites.
	ErrorMappings []ErrorMappingSpec `json:"errorMappings"`

	// ViewerCertificate is nil when no custom domain is configured; the
	// distribution then serves its provider-generated default hostname.
	ViewerCertificate *ViewerCertificateSpec `json:"viewerCertificate,omitempty"`
}

// Topology is the complete resource description for one website instance.
type Topology struct {
	Site         string           `json:"site"`
	Bucket       BucketSpec       `json:"bucket"`
	OriginAccess OriginAccessSpec `json:"originAccess"`
	Function     FunctionSpec     `json:"function"`
	Distribution DistributionSpec `json:"distribution"`
}

// Build produces the resource topology for a validated website config.
// Generated names are namespaced with the host-provided stack name and
// region so that parallel stacks never collide.
func Build(cfg *website.Config, hctx host.Context) *Topology {
	site := cfg.Name
	if site == "" {
		site = "website"
	}

	var cert *ViewerCertificateSpec
	if cfg.Certificate != "" {
		cert = &ViewerCertificateSpec{
			CertificateARN:    cfg.Certificate,
			Aliases:           append([]string(nil), cfg.Domains...),
			MinimumTLSVersion: MinimumTLSVersion,
			SSLSupportMethod:  "sni-only",
		}
	}

	return &Topology{
		Site: site,
		Bucket: BucketSpec{
			Name:         fmt.Sprintf("%s-%s", hctx.StackName, site),
			ForceDestroy: true,
		},
		OriginAccess: OriginAccessSpec{
			Comment: fmt.Sprintf("access identity for %s/%s", hctx.StackName, site),
		},
		Function: FunctionSpec{
			Name:      fmt.Sprintf("%s-%s-%s-headers", hctx.StackName, hctx.Region, site),
			EventType: "viewer-response",
			Headers:   SecurityHeaders(cfg.Security.AllowIframe),
		},
		Distribution: DistributionSpec{
			Comment:           fmt.Sprintf("static website %s/%s", hctx.StackName, site),
			DefaultRootObject: "index.html",
			DefaultTTLSeconds: DefaultCacheTTL,
			Compress:          true,
			RedirectToHTTPS:   true,
			ErrorMappings: []ErrorMappingSpec{
				// S3 reports missing keys as 403 when accessed through an
				// origin-access identity, so both map to the root document.
				{ErrorCode: 403, ResponseCode: 200, ResponsePath: "/index.html", CacheTTLSeconds: 0},
				{ErrorCode: 404, ResponseCode: 200, ResponsePath: "/index.html", CacheTTLSeconds: 0},
			},
			ViewerCertificate: cert,
		},
	}
}

// OutputNames returns the stack-output keys a provisioning run publishes
// for this topology, in a stable order.
func (t *Topology) OutputNames() []string {
	return []string{
		website.QualifiedOutput(t.Site, website.OutputBucketName),
		website.QualifiedOutput(t.Site, website.OutputDomain),
		website.QualifiedOutput(t.Site, website.OutputCNAME),
		website.QualifiedOutput(t.Site, website.OutputDistributionID),
	}
}

// PrimaryDomain returns the first distribution alias, or "" when the site
// has no custom domains and is served from the CDN default hostname.
func (t *Topology) PrimaryDomain() string {
	if t.Distribution.ViewerCertificate == nil || len(t.Distribution.ViewerCertificate.Aliases) == 0 {
		return ""
	}
	return t.Distribution.ViewerCertificate.Aliases[0]
}
