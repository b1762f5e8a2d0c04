// Package hash implementa el hashing de contraseñas con Argon2id en formato PHC:
//
//	$argon2id$v=19$m=65536,t=2,p=1$<salt-base64>$<digest-base64>
//
// Los parámetros de costo viajan dentro del propio hash, así que verificar un
// hash antiguo no requiere configuración externa. NeedsRehash permite la
// migración perezosa: cuando los parámetros configurados suben, el siguiente
// login exitoso re-hashea la credencial con los nuevos valores.
package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Errores del hasher. La discrepancia hash/contraseña NO es un error: Verify
// devuelve (false, nil) en ese caso.
var (
	ErrHashingFailure      = errors.New("hash: fallo al generar el hash")
	ErrVerificationFailure = errors.New("hash: hash almacenado malformado")
)

// Params parámetros de costo de Argon2id.
type Params struct {
	Memory      uint32 // KiB
	Time        uint32 // iteraciones
	Parallelism uint8
	SaltLength  uint32 // bytes
	KeyLength   uint32 // bytes del digest
}

// DefaultParams valores actuales de producción (64 MB, 2 iteraciones).
var DefaultParams = Params{
	Memory:      64 * 1024,
	Time:        2,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher produce y verifica hashes Argon2id con parámetros fijos por instancia.
type Hasher struct {
	params Params
}

// New construye un hasher. Campos en cero se completan con DefaultParams.
func New(p Params) *Hasher {
	if p.Memory == 0 {
		p.Memory = DefaultParams.Memory
	}
	if p.Time == 0 {
		p.Time = DefaultParams.Time
	}
	if p.Parallelism == 0 {
		p.Parallelism = DefaultParams.Parallelism
	}
	if p.SaltLength == 0 {
		p.SaltLength = DefaultParams.SaltLength
	}
	if p.KeyLength == 0 {
		p.KeyLength = DefaultParams.KeyLength
	}
	return &Hasher{params: p}
}

// Hash genera un hash PHC con salt aleatorio fresco. Dos llamadas con la misma
// contraseña producen hashes distintos.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingFailure, err)
	}
	digest := argon2.IDKey([]byte(password), salt, h.params.Time, h.params.Memory, h.params.Parallelism, h.params.KeyLength)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Time, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	)
	return encoded, nil
}

// Verify recalcula el digest con los parámetros embebidos en encoded y compara
// en tiempo constante. Retorna error solo si encoded está malformado; una
// contraseña incorrecta retorna (false, nil).
func (h *Hasher) Verify(encoded, password string) (bool, error) {
	params, salt, digest, err := decode(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password), salt, params.Time, params.Memory, params.Parallelism, uint32(len(digest)))
	return subtle.ConstantTimeCompare(got, digest) == 1, nil
}

// NeedsRehash indica si encoded fue producido con parámetros distintos a los
// actuales. Un hash estructuralmente malformado también retorna true: ante la
// duda preferimos re-hashear a rechazar.
func (h *Hasher) NeedsRehash(encoded string) bool {
	// Hashear un valor descartable con los parámetros actuales y comparar solo
	// el segmento de parámetros (no el digest, que cambia con cada salt).
	current, err := h.Hash("needs-rehash-probe")
	if err != nil {
		return true
	}
	currentParts := strings.Split(current, "$")
	storedParts := strings.Split(encoded, "$")
	if len(currentParts) < 6 || len(storedParts) < 6 {
		return true
	}
	return currentParts[3] != storedParts[3]
}

// VerifyResult resultado de VerifyAndRehash.
type VerifyResult struct {
	Valid       bool
	NeedsRehash bool
	NewHash     string // solo cuando Valid && NeedsRehash
}

// VerifyAndRehash compone Verify + NeedsRehash y, si la contraseña es válida y
// el hash está desactualizado, la re-hashea con los parámetros actuales.
func (h *Hasher) VerifyAndRehash(encoded, password string) (VerifyResult, error) {
	valid, err := h.Verify(encoded, password)
	if err != nil {
		return VerifyResult{}, err
	}
	res := VerifyResult{Valid: valid}
	if !valid {
		return res, nil
	}
	res.NeedsRehash = h.NeedsRehash(encoded)
	if res.NeedsRehash {
		newHash, err := h.Hash(password)
		if err != nil {
			return VerifyResult{}, err
		}
		res.NewHash = newHash
	}
	return res, nil
}

// decode extrae parámetros, salt y digest de un hash PHC argon2id.
func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrVerificationFailure
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Params{}, nil, nil, ErrVerificationFailure
	}
	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Parallelism); err != nil {
		return Params{}, nil, nil, ErrVerificationFailure
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, ErrVerificationFailure
	}
	digest, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, ErrVerificationFailure
	}
	return p, salt, digest, nil
}
