// Package cookie writes and reads HTTP cookies with optional HMAC-SHA256
// signatures or AES-256-GCM encryption.
//
// A Manager is built from one or more secrets of at least 32 characters. The
// first secret writes; every secret is tried when reading, so secrets can be
// rotated by prepending a new one.
//
//	cookies, err := cookie.New([]string{os.Getenv("COOKIE_SECRET")})
//	if err != nil {
//		return err
//	}
//
//	// integrity only: view preferences
//	_ = cookies.SetSigned(w, "device_view", "mobile=false")
//	v, err := cookies.GetSigned(r, "device_view")
//
//	// integrity and confidentiality: session tokens
//	_ = cookies.SetEncrypted(w, "sid", token, cookie.WithMaxAge(1800))
//
// Reading returns ErrCookieNotFound for a missing cookie and
// ErrInvalidSignature, ErrInvalidFormat or ErrDecryptionFailed for values that
// were tampered with.
package cookie
