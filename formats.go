package tagbridge

// Adapters register themselves with the internal registry on import.
import (
	_ "github.com/simonhull/tagbridge/internal/flac"
	_ "github.com/simonhull/tagbridge/internal/mp4"
	_ "github.com/simonhull/tagbridge/internal/mpeg"
	_ "github.com/simonhull/tagbridge/internal/taglibfile"
)
