/*
Package security groups the gateway's transport and credential handling.

Subpackages:

  - tls: validates the listener certificate and reloads it from disk when it
    is renewed, so long-running gateways never serve an expired certificate.
  - secrets: resolves named credentials (such as "openai-api-key") from a
    directory of secret files and then the environment.

Credential values are never logged. Passthrough services look up their
credential on every request so that rotated keys take effect without a
restart:

	chain, err := secrets.FromConfig(cfg.Security.Secrets)
	if err != nil {
		return err
	}
	token, err := chain.Credential(ctx, "openai-api-key")
*/
package security
