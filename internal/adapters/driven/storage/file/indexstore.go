package file

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/legalease/legalease-cli/internal/core/domain"
	"github.com/legalease/legalease-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// Embedding artifact layout: the magic, then a gzip stream holding a
// length-prefixed JSON header followed by rows*dims little-endian float32
// values in row-major order.
const (
	indexMagic        = "LEVX1"
	embeddingsName    = "index.levx"
	indexMetadataName = "index.meta.json"
)

// indexHeader describes the embedding matrix shape.
type indexHeader struct {
	Rows int `json:"rows"`
	Dims int `json:"dims"`
}

// IndexStore persists the embedding matrix and its aligned metadata under a
// single directory. The pair is replaced atomically per file; Exists and
// Load treat a lone artifact as no index at all.
type IndexStore struct {
	dir string
}

// NewIndexStore creates an index store rooted at dir.
func NewIndexStore(dir string) *IndexStore {
	return &IndexStore{dir: dir}
}

// Path returns the embeddings artifact location.
func (s *IndexStore) Path() string {
	return filepath.Join(s.dir, embeddingsName)
}

func (s *IndexStore) metadataPath() string {
	return filepath.Join(s.dir, indexMetadataName)
}

// Exists reports whether BOTH artifacts are present.
func (s *IndexStore) Exists() bool {
	if _, err := os.Stat(s.Path()); err != nil {
		return false
	}
	if _, err := os.Stat(s.metadataPath()); err != nil {
		return false
	}
	return true
}

// Save replaces both artifacts. Each file is written to a temp sibling and
// renamed into place; metadata lands only after the embeddings do, so a
// crash between the two leaves a lone embeddings file, which readers ignore.
func (s *IndexStore) Save(ctx context.Context, embeddings [][]float32, metadata []domain.ChunkMetadata) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(embeddings) != len(metadata) {
		return fmt.Errorf("%w: %d embeddings for %d metadata records", domain.ErrInvalidInput, len(embeddings), len(metadata))
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	if err := s.writeEmbeddings(embeddings); err != nil {
		return err
	}
	return s.writeMetadata(metadata)
}

func (s *IndexStore) writeEmbeddings(embeddings [][]float32) error {
	dims := 0
	if len(embeddings) > 0 {
		dims = len(embeddings[0])
	}

	tmp, err := os.CreateTemp(s.dir, embeddingsName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp embeddings file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if _, err := bw.WriteString(indexMagic); err != nil {
		tmp.Close()
		return fmt.Errorf("write magic: %w", err)
	}

	zw := gzip.NewWriter(bw)
	header, err := json.Marshal(indexHeader{Rows: len(embeddings), Dims: dims})
	if err != nil {
		tmp.Close()
		return fmt.Errorf("marshal index header: %w", err)
	}
	if err := binary.Write(zw, binary.LittleEndian, uint32(len(header))); err != nil {
		tmp.Close()
		return fmt.Errorf("write header length: %w", err)
	}
	if _, err := zw.Write(header); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}

	buf := make([]byte, 4)
	for i, row := range embeddings {
		if len(row) != dims {
			tmp.Close()
			return fmt.Errorf("%w: row %d has %d dims, expected %d", domain.ErrInvalidInput, i, len(row), dims)
		}
		for _, v := range row {
			binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
			if _, err := zw.Write(buf); err != nil {
				tmp.Close()
				return fmt.Errorf("write embeddings: %w", err)
			}
		}
	}

	if err := zw.Close(); err != nil {
		tmp.Close()
		return fmt.Errorf("finish compression: %w", err)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush embeddings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close embeddings file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace embeddings: %w", err)
	}
	return nil
}

func (s *IndexStore) writeMetadata(metadata []domain.ChunkMetadata) error {
	if metadata == nil {
		metadata = []domain.ChunkMetadata{}
	}
	data, err := json.MarshalIndent(metadata, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index metadata: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(s.dir, indexMetadataName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp metadata file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write index metadata: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close metadata file: %w", err)
	}
	if err := os.Rename(tmpName, s.metadataPath()); err != nil {
		return fmt.Errorf("replace index metadata: %w", err)
	}
	return nil
}

// Load reads both artifacts and verifies their alignment.
func (s *IndexStore) Load(ctx context.Context) ([][]float32, []domain.ChunkMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if !s.Exists() {
		return nil, nil, fmt.Errorf("%w: index artifacts in %s", domain.ErrNotFound, s.dir)
	}

	embeddings, err := s.readEmbeddings()
	if err != nil {
		return nil, nil, err
	}

	metaData, err := os.ReadFile(s.metadataPath())
	if err != nil {
		return nil, nil, fmt.Errorf("read index metadata: %w", err)
	}
	var metadata []domain.ChunkMetadata
	if err := json.Unmarshal(metaData, &metadata); err != nil {
		return nil, nil, fmt.Errorf("parse index metadata: %w", err)
	}

	if len(embeddings) != len(metadata) {
		return nil, nil, fmt.Errorf("index corrupt: %d embeddings but %d metadata records", len(embeddings), len(metadata))
	}
	return embeddings, metadata, nil
}

func (s *IndexStore) readEmbeddings() ([][]float32, error) {
	f, err := os.Open(s.Path())
	if err != nil {
		return nil, fmt.Errorf("open embeddings: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	magic := make([]byte, len(indexMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if !bytes.Equal(magic, []byte(indexMagic)) {
		return nil, fmt.Errorf("embeddings file is not a %s artifact", indexMagic)
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, fmt.Errorf("open compressed stream: %w", err)
	}
	defer zr.Close()

	var headerLen uint32
	if err := binary.Read(zr, binary.LittleEndian, &headerLen); err != nil {
		return nil, fmt.Errorf("read header length: %w", err)
	}
	headerData := make([]byte, headerLen)
	if _, err := io.ReadFull(zr, headerData); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	var header indexHeader
	if err := json.Unmarshal(headerData, &header); err != nil {
		return nil, fmt.Errorf("parse header: %w", err)
	}
	if header.Rows < 0 || header.Dims < 0 {
		return nil, fmt.Errorf("index corrupt: negative shape %dx%d", header.Rows, header.Dims)
	}

	embeddings := make([][]float32, header.Rows)
	rowBytes := make([]byte, header.Dims*4)
	for i := range embeddings {
		if _, err := io.ReadFull(zr, rowBytes); err != nil {
			return nil, fmt.Errorf("read embedding row %d: %w", i, err)
		}
		row := make([]float32, header.Dims)
		for j := range row {
			row[j] = math.Float32frombits(binary.LittleEndian.Uint32(rowBytes[j*4:]))
		}
		embeddings[i] = row
	}
	return embeddings, nil
}
