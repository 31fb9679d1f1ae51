/*
Package tls keeps the gateway's serving certificate current.

CertificateReloader loads the configured certificate and key, validates the
leaf, and polls the files for changes so renewed certificates (for example
from cert-manager or Let's Encrypt) are picked up without a restart:

	reloader := tls.NewCertificateReloader(cfg.Security.TLS)
	if err := reloader.Start(ctx); err != nil {
		return err
	}
	tlsConfig.GetCertificate = reloader.GetCertificateFunc()

A reload that fails validation keeps serving the previous certificate.
*/
package tls
