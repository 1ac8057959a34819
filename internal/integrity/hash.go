package integrity

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// hashBufSize is the streaming buffer size for content hashing.
const hashBufSize = 1024

// FileHash streams the file's content through a keyed XXH3-64 hasher. The
// policy secret is folded down to the hasher's 64-bit seed; a hash is only
// ever compared against hashes produced under the same policy, so no
// cross-installation stability is needed beyond determinism in
// (secret, content).
func FileHash(secret []byte, path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h := xxh3.NewSeed(xxh3.Hash(secret))
	buf := make([]byte, hashBufSize)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			_, _ = h.Write(buf[:n])
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	return h.Sum64(), nil
}
