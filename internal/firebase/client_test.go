package firebase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewClients_RequiresCredentials(t *testing.T) {
	_, err := NewClients(context.Background(), Settings{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewClients(context.Background(), Settings{
		CredentialsFile: filepath.Join(t.TempDir(), "missing.json"),
		Bucket:          "b",
	})
	assert.Error(t, err)
}

func TestClose_Nil(t *testing.T) {
	var c *Clients
	assert.NoError(t, c.Close())
	assert.NoError(t, (&Clients{}).Close())
}
