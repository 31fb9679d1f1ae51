/*
Package secrets resolves the credentials passthrough services send upstream.

# Overview

Dispatchers ask a CredentialSource for a credential by name (for example
"openai-api-key") at request time. They never read the environment directly,
so tests can substitute a StaticProvider and operators can rotate keys
without restarting the gateway.

# Providers

Each source implements SecretProvider:

  - EnvProvider reads environment variables. "openai-api-key" is read from
    OPENAI_API_KEY, or PREFIX_OPENAI_API_KEY when a prefix is configured.
  - FileProvider reads one file per secret from a directory (Kubernetes
    secret mounts). With watching enabled, fsnotify events invalidate the
    cached value of the file that changed.
  - StaticProvider holds values in memory and is intended for tests.

# Chaining

A Chain tries providers in order and returns the first non-empty value:

	chain, err := secrets.FromConfig(cfg.Security.Secrets)
	if err != nil {
	    return err
	}
	defer chain.Close()

	token, err := chain.Credential(ctx, "openai-api-key")
	if errors.Is(err, secrets.ErrNotFound) {
	    // configuration fault: the request is not forwarded
	}

When a directory is configured the FileProvider comes first and the
environment is the fallback.

# Security

Secret values are never logged. File secrets must have 0600 or 0400
permissions and must live directly in the configured directory.
*/
package secrets
