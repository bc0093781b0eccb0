// Package container reads the compiled binary dictionary archives: plain
// ZIP files holding little-endian uint32 records (plus raw string-table
// blobs), accessed without ever materializing the whole archive in memory
// at once.
package container

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Archive is a read-only handle onto one compiled database ZIP file
// (dict.zip, text.zip, chars.zip, meta.zip, or kanji.zip).
type Archive struct {
	reader *zip.Reader
}

// Open wraps an already-opened zip.Reader (e.g. one backed by a ReaderAt
// over an os.File, or in-memory bytes).
func Open(r *zip.Reader) *Archive {
	return &Archive{reader: r}
}

// Count returns the number of files in the archive.
func (a *Archive) Count() int {
	return len(a.reader.File)
}

// File is one open entry within an Archive.
type File struct {
	rc   io.ReadCloser
	size uint32
}

// Open opens the named entry for reading. The caller must Close it.
func (a *Archive) Open(name string) (*File, error) {
	for _, f := range a.reader.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			return &File{rc: rc, size: uint32(f.UncompressedSize64)}, nil
		}
	}
	return nil, fmt.Errorf("container: no such entry %q", name)
}

// Close releases the entry's underlying reader.
func (f *File) Close() error {
	return f.rc.Close()
}

// ReadUint32Vector reads the file's entire remaining content as a densely
// packed vector of little-endian uint32 values. The file size must be a
// multiple of 4.
func (f *File) ReadUint32Vector() ([]uint32, error) {
	if f.size%4 != 0 {
		return nil, fmt.Errorf("container: entry size %d is not a multiple of 4", f.size)
	}
	raw := make([]byte, f.size)
	if _, err := io.ReadFull(f.rc, raw); err != nil {
		return nil, err
	}
	return bytesToUint32(raw), nil
}

// ReadUint32 reads a single little-endian uint32 from the current position.
func (f *File) ReadUint32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(f.rc, buf[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

// ReadUint32List reads a length-prefixed vector: a leading uint32 count,
// followed by that many little-endian uint32 values.
func (f *File) ReadUint32List() ([]uint32, error) {
	count, err := f.ReadUint32()
	if err != nil {
		return nil, err
	}
	return f.ReadUint32Vec(int(count))
}

// ReadUint32Vec reads exactly count little-endian uint32 values.
func (f *File) ReadUint32Vec(count int) ([]uint32, error) {
	raw := make([]byte, count*4)
	if _, err := io.ReadFull(f.rc, raw); err != nil {
		return nil, err
	}
	return bytesToUint32(raw), nil
}

// ReadAll reads the file's entire remaining content as raw bytes.
func (f *File) ReadAll() ([]byte, error) {
	return io.ReadAll(f.rc)
}

func bytesToUint32(raw []byte) []uint32 {
	out := make([]uint32, len(raw)/4)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4 : i*4+4])
	}
	return out
}

// ReadUint32Vector opens name within the archive and reads it as a densely
// packed vector of little-endian uint32 values, closing the entry before
// returning.
func (a *Archive) ReadUint32Vector(name string) ([]uint32, error) {
	f, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.ReadUint32Vector()
}

// WriteUint32Vector appends a new file entry named name to w containing
// values packed as little-endian uint32s, stored (not deflated) so the
// runtime can still bulk-read it as a dense vector.
func WriteUint32Vector(w *zip.Writer, name string, values []uint32) error {
	entry, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Store})
	if err != nil {
		return err
	}
	raw := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(raw[i*4:i*4+4], v)
	}
	_, err = entry.Write(raw)
	return err
}

// WriteUint32List appends a new file entry named name containing a
// length-prefixed vector: a leading uint32 count followed by values.
func WriteUint32List(w *zip.Writer, name string, values []uint32) error {
	packed := make([]uint32, 0, len(values)+1)
	packed = append(packed, uint32(len(values)))
	packed = append(packed, values...)
	return WriteUint32Vector(w, name, packed)
}

// WriteAll appends a new file entry named name containing raw bytes,
// deflated for compactness (string-table blobs compress well).
func WriteAll(w *zip.Writer, name string, data []byte) error {
	entry, err := w.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	_, err = entry.Write(data)
	return err
}

func putUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

// WriteStringTable writes strs as a Count/Index/Data string table: a leading
// count, that many (offset, length) uint32 pairs into the trailing Data
// blob, then the concatenated raw bytes of every string. This is the layout
// shared by the glossary, terms_text, and search_text entries.
func WriteStringTable(w *zip.Writer, name string, strs []string) error {
	var buf bytes.Buffer
	putUint32(&buf, uint32(len(strs)))

	var data []byte
	var offset uint32
	for _, s := range strs {
		putUint32(&buf, offset)
		putUint32(&buf, uint32(len(s)))
		data = append(data, s...)
		offset += uint32(len(s))
	}
	buf.Write(data)

	return WriteAll(w, name, buf.Bytes())
}

// ReadStringTable reads a string table written by WriteStringTable.
func (a *Archive) ReadStringTable(name string) ([]string, error) {
	f, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raw) < 4 {
		return nil, fmt.Errorf("container: %s: too short for a string table", name)
	}
	count := int(binary.LittleEndian.Uint32(raw[0:4]))

	pos := 4
	type span struct{ offset, length uint32 }
	spans := make([]span, count)
	for i := range spans {
		if pos+8 > len(raw) {
			return nil, fmt.Errorf("container: %s: truncated index", name)
		}
		spans[i] = span{
			offset: binary.LittleEndian.Uint32(raw[pos : pos+4]),
			length: binary.LittleEndian.Uint32(raw[pos+4 : pos+8]),
		}
		pos += 8
	}

	dataStart := pos
	strs := make([]string, count)
	for i, sp := range spans {
		start := dataStart + int(sp.offset)
		end := start + int(sp.length)
		if start < dataStart || end > len(raw) {
			return nil, fmt.Errorf("container: %s: string %d out of range", name, i)
		}
		strs[i] = string(raw[start:end])
	}
	return strs, nil
}

// WriteUint32ListVector writes a sequence of length-prefixed uint32 lists, in
// order, as a single entry: a leading count of lists, then for each list a
// length followed by its values. This is the postings layout shared by the
// terms_index and search_index entries: one list per string-table id.
func WriteUint32ListVector(w *zip.Writer, name string, lists [][]uint32) error {
	packed := make([]uint32, 0, 1+len(lists))
	packed = append(packed, uint32(len(lists)))
	for _, l := range lists {
		packed = append(packed, uint32(len(l)))
		packed = append(packed, l...)
	}
	return WriteUint32Vector(w, name, packed)
}

// ReadUint32ListVector reads a list vector written by WriteUint32ListVector.
func (a *Archive) ReadUint32ListVector(name string) ([][]uint32, error) {
	vals, err := a.ReadUint32Vector(name)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, fmt.Errorf("container: %s: empty list vector", name)
	}
	n := int(vals[0])
	vals = vals[1:]

	lists := make([][]uint32, n)
	for i := 0; i < n; i++ {
		if len(vals) == 0 {
			return nil, fmt.Errorf("container: %s: truncated list vector", name)
		}
		ln := int(vals[0])
		vals = vals[1:]
		if ln > len(vals) {
			return nil, fmt.Errorf("container: %s: list %d length out of range", name, i)
		}
		lists[i] = append([]uint32(nil), vals[:ln]...)
		vals = vals[ln:]
	}
	return lists, nil
}

// KeywordEntry is one (key, postings) pair in a keyword index.
type KeywordEntry struct {
	Key      string
	Postings []uint32
}

// WriteKeywordIndex writes entries (assumed pre-sorted by Key, ascending) as
// a combined key/postings table: HeaderBytes, DataBytes, and ListBytes byte
// counts, followed by one (text_offset, text_length, list_offset, list_length)
// uint32 tuple per entry, the concatenated key bytes, then the concatenated
// postings values. This is the glossary_index layout: its keys are the
// distinct English tokens split from glosses, not full gloss strings.
func WriteKeywordIndex(w *zip.Writer, name string, entries []KeywordEntry) error {
	var keyData []byte
	var postings []uint32
	tuples := make([]uint32, 0, len(entries)*4)

	var keyOffset, listOffset uint32
	for _, e := range entries {
		tuples = append(tuples, keyOffset, uint32(len(e.Key)), listOffset, uint32(len(e.Postings)))
		keyData = append(keyData, e.Key...)
		postings = append(postings, e.Postings...)
		keyOffset += uint32(len(e.Key))
		listOffset += uint32(len(e.Postings))
	}

	headerBytes := uint32(len(tuples)) * 4
	dataBytes := uint32(len(keyData))
	listBytes := uint32(len(postings)) * 4

	var buf bytes.Buffer
	putUint32(&buf, headerBytes)
	putUint32(&buf, dataBytes)
	putUint32(&buf, listBytes)
	for _, t := range tuples {
		putUint32(&buf, t)
	}
	buf.Write(keyData)
	for _, v := range postings {
		putUint32(&buf, v)
	}

	return WriteAll(w, name, buf.Bytes())
}

// ReadKeywordIndex reads a keyword index written by WriteKeywordIndex.
func (a *Archive) ReadKeywordIndex(name string) ([]KeywordEntry, error) {
	f, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	raw, err := f.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(raw) < 12 {
		return nil, fmt.Errorf("container: %s: too short for a keyword index", name)
	}
	headerBytes := binary.LittleEndian.Uint32(raw[0:4])
	dataBytes := binary.LittleEndian.Uint32(raw[4:8])
	_ = binary.LittleEndian.Uint32(raw[8:12]) // listBytes, re-derived per entry below

	pos := 12
	numEntries := int(headerBytes / 4 / 4)
	type tuple struct{ keyOff, keyLen, listOff, listLen uint32 }
	tuples := make([]tuple, numEntries)
	for i := range tuples {
		if pos+16 > len(raw) {
			return nil, fmt.Errorf("container: %s: truncated header", name)
		}
		tuples[i] = tuple{
			keyOff:  binary.LittleEndian.Uint32(raw[pos : pos+4]),
			keyLen:  binary.LittleEndian.Uint32(raw[pos+4 : pos+8]),
			listOff: binary.LittleEndian.Uint32(raw[pos+8 : pos+12]),
			listLen: binary.LittleEndian.Uint32(raw[pos+12 : pos+16]),
		}
		pos += 16
	}

	dataStart := pos
	listStart := dataStart + int(dataBytes)

	entries := make([]KeywordEntry, numEntries)
	for i, t := range tuples {
		keyStart := dataStart + int(t.keyOff)
		keyEnd := keyStart + int(t.keyLen)
		if keyStart < dataStart || keyEnd > dataStart+int(dataBytes) {
			return nil, fmt.Errorf("container: %s: key %d out of range", name, i)
		}
		postingsStart := listStart + int(t.listOff)*4
		postingsEnd := postingsStart + int(t.listLen)*4
		if postingsStart < listStart || postingsEnd > len(raw) {
			return nil, fmt.Errorf("container: %s: postings %d out of range", name, i)
		}
		postings := make([]uint32, t.listLen)
		for j := range postings {
			postings[j] = binary.LittleEndian.Uint32(raw[postingsStart+j*4 : postingsStart+j*4+4])
		}
		entries[i] = KeywordEntry{Key: string(raw[keyStart:keyEnd]), Postings: postings}
	}
	return entries, nil
}
