// Package utils provides terminal helpers shared by the tripwirs commands,
// most importantly the no-echo passphrase prompt.
package utils
