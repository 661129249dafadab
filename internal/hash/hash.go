package hash

import "golang.org/x/crypto/bcrypt"

// Scheme isolates the credential check so the storage format can change
// without touching callers.
type Scheme interface {
	Hash(password string) (string, error)
	Check(stored, password string) bool
}

type Bcrypt struct{}

func (Bcrypt) Hash(password string) (string, error) {
	hashbytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashbytes), nil
}

func (Bcrypt) Check(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
}

// Plain stores passwords as-is. It exists for parity with the legacy store
// and is insecure; keep it off outside of migrations from the old data.
type Plain struct{}

func (Plain) Hash(password string) (string, error) { return password, nil }

func (Plain) Check(stored, password string) bool { return stored == password }

func ByName(name string) Scheme {
	if name == "plain" {
		return Plain{}
	}
	return Bcrypt{}
}
