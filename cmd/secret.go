package cmd

import (
	"fmt"

	"grimm.is/spagen/internal/metrics"
	"grimm.is/spagen/internal/secret"
)

// RunSecret prints a random preshared key.
func RunSecret(length int) error {
	psk, err := secret.Generate(length)
	if err != nil {
		return err
	}
	metrics.Get().SecretsGenerated.Inc()
	fmt.Fprintln(Stdout, psk)
	return nil
}
