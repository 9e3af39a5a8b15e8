package keyring

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"sealdm/internal/crypto"
	"sealdm/internal/domain"
)

const keysFile = "identity_keys.json"

type keyFile struct {
	Public  domain.PublicKeyRecord  `json:"public"`
	Private domain.PrivateKeyRecord `json:"private"`
}

// File persists the key pair under a home directory with 0600 permissions.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile returns a vault rooted at dir.
func NewFile(dir string) *File { return &File{dir: dir} }

// LoadKeyPair reads the cached pair; ok is false when none exists yet.
func (f *File) LoadKeyPair() (domain.KeyPair, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(filepath.Join(f.dir, keysFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.KeyPair{}, false, nil
		}
		return domain.KeyPair{}, false, errors.Wrap(err, "read key file")
	}
	var kf keyFile
	if err := json.Unmarshal(raw, &kf); err != nil {
		return domain.KeyPair{}, false, errors.Wrap(err, "parse key file")
	}
	pub, err := crypto.ImportPublic(kf.Public)
	if err != nil {
		return domain.KeyPair{}, false, err
	}
	priv, err := crypto.ImportPrivate(kf.Private)
	if err != nil {
		return domain.KeyPair{}, false, err
	}
	return domain.KeyPair{Public: pub, Private: priv}, true, nil
}

// SaveKeyPair writes the pair to disk.
func (f *File) SaveKeyPair(kp domain.KeyPair) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return errors.Wrap(err, "create key dir")
	}
	raw, err := json.MarshalIndent(keyFile{
		Public:  crypto.ExportPublic(kp.Public),
		Private: crypto.ExportPrivate(kp.Private),
	}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(f.dir, keysFile), raw, 0o600); err != nil {
		return errors.Wrap(err, "write key file")
	}
	return nil
}

var _ domain.KeyVault = (*File)(nil)
