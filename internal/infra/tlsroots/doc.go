// Package tlsroots loads TLS material for both ends of the HTTPS link.
//
// The server side is a KeyPair whose certificate can be swapped at runtime
// through tls.Config.GetCertificate, so a renewed certificate is picked up
// without a restart. The client side is LoadPool, which extends the system
// roots with a private CA bundle.
package tlsroots
