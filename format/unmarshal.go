package format

import (
	"fmt"

	"github.com/arrowlake/parquet/arena"
	"github.com/arrowlake/parquet/internal/thriftcompact"
)

// Unmarshal parses buf as a Thrift compact-protocol FileMetaData, allocating
// variable-size strings and arrays from a. Unknown field ids are skipped
// (spec §4.4); every container and nesting bound of spec §4.3 is enforced.
func Unmarshal(buf []byte, a *arena.Arena) (*FileMetaData, error) {
	d := thriftcompact.NewDecoder(buf)
	m := new(FileMetaData)
	if err := readFileMetaData(d, a, m); err != nil {
		return nil, err
	}
	return m, nil
}

func readFileMetaData(d *thriftcompact.Decoder, a *arena.Arena, m *FileMetaData) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			m.Version = v
		case 2:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxSchemaElements, "schema elements"); err != nil {
				return err
			}
			m.Schema = make([]SchemaElement, lh.Size)
			for i := range m.Schema {
				if err := readSchemaElement(d, a, &m.Schema[i]); err != nil {
					return err
				}
			}
		case 3:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.NumRows = v
		case 4:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxRowGroups, "row groups"); err != nil {
				return err
			}
			m.RowGroups = make([]RowGroup, lh.Size)
			for i := range m.RowGroups {
				if err := readRowGroup(d, a, &m.RowGroups[i]); err != nil {
					return err
				}
			}
		case 5:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxKeyValuePairs, "key/value pairs"); err != nil {
				return err
			}
			m.KeyValueMetadata = make([]KeyValue, lh.Size)
			for i := range m.KeyValueMetadata {
				if err := readKeyValue(d, a, &m.KeyValueMetadata[i]); err != nil {
					return err
				}
			}
		case 6:
			s, err := d.ReadString()
			if err != nil {
				return err
			}
			m.HasCreatedBy = true
			m.CreatedBy = a.DupString(s)
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readSchemaElement(d *thriftcompact.Decoder, a *arena.Arena, s *SchemaElement) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.Type = Type(v)
			s.HasType = true
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.TypeLength = v
			s.HasTypeLength = true
		case 3:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.RepetitionType = FieldRepetitionType(v)
			s.HasRepetition = true
		case 4:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			s.Name = a.DupString(v)
		case 5:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.NumChildren = v
			s.HasNumChildren = true
		case 6:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.ConvertedType = ConvertedType(v)
			s.HasConverted = true
		case 7:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.Scale = v
			s.HasScale = true
		case 8:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.Precision = v
			s.HasPrecision = true
		case 9:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.FieldID = v
			s.HasFieldID = true
		case 10:
			lt, err := readLogicalType(d)
			if err != nil {
				return err
			}
			s.LogicalType = lt
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readLogicalType(d *thriftcompact.Decoder) (*LogicalType, error) {
	if err := d.ReadStructBegin(); err != nil {
		return nil, err
	}
	defer d.ReadStructEnd()
	lt := new(LogicalType)
	fh, err := d.ReadFieldBegin()
	if err != nil {
		return nil, err
	}
	switch fh.ID {
	case 1:
		lt.Kind = LogicalString
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 2:
		lt.Kind = LogicalMap
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 3:
		lt.Kind = LogicalList
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 4:
		lt.Kind = LogicalEnum
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 5:
		lt.Kind = LogicalDecimal
		if err := d.ReadStructBegin(); err != nil {
			return nil, err
		}
		for {
			f, err := d.ReadFieldBegin()
			if err != nil {
				return nil, err
			}
			if f.Type == thriftcompact.TypeStop {
				break
			}
			switch f.ID {
			case 1:
				v, err := d.ReadI32()
				if err != nil {
					return nil, err
				}
				lt.DecimalScale = v
			case 2:
				v, err := d.ReadI32()
				if err != nil {
					return nil, err
				}
				lt.DecimalPrecision = v
			default:
				if err := d.Skip(f.Type); err != nil {
					return nil, err
				}
			}
		}
		d.ReadStructEnd()
	case 6:
		lt.Kind = LogicalDate
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 7, 8:
		if fh.ID == 7 {
			lt.Kind = LogicalTime
		} else {
			lt.Kind = LogicalTimestamp
		}
		if err := readTimeOrTimestamp(d, lt); err != nil {
			return nil, err
		}
	case 10:
		lt.Kind = LogicalInteger
		if err := d.ReadStructBegin(); err != nil {
			return nil, err
		}
		for {
			f, err := d.ReadFieldBegin()
			if err != nil {
				return nil, err
			}
			if f.Type == thriftcompact.TypeStop {
				break
			}
			switch f.ID {
			case 1:
				b, err := d.ReadByte()
				if err != nil {
					return nil, err
				}
				lt.IntBitWidth = int8(b)
			case 2:
				v, err := d.ReadBool()
				if err != nil {
					return nil, err
				}
				lt.IntSigned = v
			default:
				if err := d.Skip(f.Type); err != nil {
					return nil, err
				}
			}
		}
		d.ReadStructEnd()
	case 11:
		lt.Kind = LogicalUnknown
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 12:
		lt.Kind = LogicalJSON
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 13:
		lt.Kind = LogicalBSON
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 14:
		lt.Kind = LogicalUUID
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	case 15:
		lt.Kind = LogicalFloat16
		if err := skipEmptyStruct(d); err != nil {
			return nil, err
		}
	default:
		lt.Kind = LogicalNone
		if err := d.Skip(fh.Type); err != nil {
			return nil, err
		}
	}
	// consume the STOP terminating the union struct.
	for {
		f, err := d.ReadFieldBegin()
		if err != nil {
			return nil, err
		}
		if f.Type == thriftcompact.TypeStop {
			break
		}
		if err := d.Skip(f.Type); err != nil {
			return nil, err
		}
	}
	return lt, nil
}

func skipEmptyStruct(d *thriftcompact.Decoder) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	f, err := d.ReadFieldBegin()
	if err != nil {
		return err
	}
	if f.Type == thriftcompact.TypeStop {
		return nil
	}
	return fmt.Errorf("%w: unexpected field in empty logical-type struct", ErrInvalidMetadata)
}

func readTimeOrTimestamp(d *thriftcompact.Decoder, lt *LogicalType) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		f, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if f.Type == thriftcompact.TypeStop {
			return nil
		}
		switch f.ID {
		case 1:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			lt.TimeIsAdjustedToUTC = v
		case 2:
			if err := d.ReadStructBegin(); err != nil {
				return err
			}
			uf, err := d.ReadFieldBegin()
			if err != nil {
				return err
			}
			switch uf.ID {
			case 1:
				lt.TimeUnit = Millis
			case 2:
				lt.TimeUnit = Micros
			case 3:
				lt.TimeUnit = Nanos
			}
			if uf.Type != thriftcompact.TypeStop {
				if err := skipEmptyStruct(d); err != nil {
					return err
				}
			}
			for {
				ef, err := d.ReadFieldBegin()
				if err != nil {
					return err
				}
				if ef.Type == thriftcompact.TypeStop {
					break
				}
				if err := d.Skip(ef.Type); err != nil {
					return err
				}
			}
			d.ReadStructEnd()
		default:
			if err := d.Skip(f.Type); err != nil {
				return err
			}
		}
	}
}

func readRowGroup(d *thriftcompact.Decoder, a *arena.Arena, g *RowGroup) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxColumnsPerRowGroup, "columns"); err != nil {
				return err
			}
			g.Columns = make([]ColumnChunk, lh.Size)
			for i := range g.Columns {
				if err := readColumnChunk(d, a, &g.Columns[i]); err != nil {
					return err
				}
			}
		case 2:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			g.TotalByteSize = v
		case 3:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			g.NumRows = v
		case 4:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			g.SortingColumns = make([]SortingColumn, lh.Size)
			for i := range g.SortingColumns {
				if err := readSortingColumn(d, &g.SortingColumns[i]); err != nil {
					return err
				}
			}
		case 5:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			g.HasFileOffset = true
			g.FileOffset = v
		case 6:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			g.HasTotalCompressed = true
			g.TotalCompressedSize = v
		case 7:
			v, err := d.ReadI16()
			if err != nil {
				return err
			}
			g.HasOrdinal = true
			g.Ordinal = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readSortingColumn(d *thriftcompact.Decoder, s *SortingColumn) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.ColumnIdx = v
		case 2:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			s.Descending = v
		case 3:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			s.NullsFirst = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readColumnChunk(d *thriftcompact.Decoder, a *arena.Arena, c *ColumnChunk) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			c.HasFilePath = true
			c.FilePath = a.DupString(v)
		case 2:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			c.FileOffset = v
		case 3:
			c.HasMetaData = true
			if err := readColumnMetaData(d, a, &c.MetaData); err != nil {
				return err
			}
		case 4:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			c.HasOffsetIndexOff = true
			c.OffsetIndexOffset = v
		case 5:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			c.HasOffsetIndexLen = true
			c.OffsetIndexLength = v
		case 6:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			c.HasColumnIndexOff = true
			c.ColumnIndexOffset = v
		case 7:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			c.HasColumnIndexLen = true
			c.ColumnIndexLength = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readColumnMetaData(d *thriftcompact.Decoder, a *arena.Arena, m *ColumnMetaData) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			m.Type = Type(v)
		case 2:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxEncodingsPerColumn, "encodings"); err != nil {
				return err
			}
			m.Encodings = make([]Encoding, lh.Size)
			for i := range m.Encodings {
				v, err := d.ReadI32()
				if err != nil {
					return err
				}
				m.Encodings[i] = Encoding(v)
			}
		case 3:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxPathElements, "path elements"); err != nil {
				return err
			}
			m.PathInSchema = make([]string, lh.Size)
			for i := range m.PathInSchema {
				v, err := d.ReadString()
				if err != nil {
					return err
				}
				m.PathInSchema[i] = a.DupString(v)
			}
		case 4:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			m.Codec = CompressionCodec(v)
		case 5:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.NumValues = v
		case 6:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.TotalUncompressedSize = v
		case 7:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.TotalCompressedSize = v
		case 8:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxKeyValuePairs, "key/value pairs"); err != nil {
				return err
			}
			m.KeyValueMetadata = make([]KeyValue, lh.Size)
			for i := range m.KeyValueMetadata {
				if err := readKeyValue(d, a, &m.KeyValueMetadata[i]); err != nil {
					return err
				}
			}
		case 9:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.DataPageOffset = v
		case 11:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.HasDictionaryOffset = true
			m.DictionaryPageOffset = v
		case 12:
			m.HasStatistics = true
			if err := readStatistics(d, a, &m.Statistics); err != nil {
				return err
			}
		case 13:
			lh, err := d.ReadListBegin()
			if err != nil {
				return err
			}
			if err := checkCap(lh.Size, MaxEncodingStats, "encoding stats"); err != nil {
				return err
			}
			m.EncodingStats = make([]PageEncodingStats, lh.Size)
			for i := range m.EncodingStats {
				if err := readPageEncodingStats(d, &m.EncodingStats[i]); err != nil {
					return err
				}
			}
		case 14:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			m.HasBloomFilterOffset = true
			m.BloomFilterOffset = v
		case 15:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			m.HasBloomFilterLength = true
			m.BloomFilterLength = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readPageEncodingStats(d *thriftcompact.Decoder, s *PageEncodingStats) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.PageType = PageType(v)
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.Encoding = Encoding(v)
		case 3:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			s.Count = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readKeyValue(d *thriftcompact.Decoder, a *arena.Arena, kv *KeyValue) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			kv.Key = a.DupString(v)
		case 2:
			v, err := d.ReadString()
			if err != nil {
				return err
			}
			kv.HasValue = true
			kv.Value = a.DupString(v)
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readStatistics(d *thriftcompact.Decoder, a *arena.Arena, s *Statistics) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1: // deprecated max
			v, err := d.ReadBinary()
			if err != nil {
				return err
			}
			if !s.HasMax {
				s.HasMax = true
				s.Max = a.DupBytes(v)
			}
		case 2: // deprecated min
			v, err := d.ReadBinary()
			if err != nil {
				return err
			}
			if !s.HasMin {
				s.HasMin = true
				s.Min = a.DupBytes(v)
			}
		case 3:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			s.HasNullCount = true
			s.NullCount = v
		case 4:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			s.HasDistinct = true
			s.DistinctCount = v
		case 5:
			v, err := d.ReadBinary()
			if err != nil {
				return err
			}
			s.HasMax = true
			s.Max = a.DupBytes(v)
		case 6:
			v, err := d.ReadBinary()
			if err != nil {
				return err
			}
			s.HasMin = true
			s.Min = a.DupBytes(v)
		case 7:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			s.HasMaxExact = true
			s.MaxExact = v
		case 8:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			s.HasMinExact = true
			s.MinExact = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

// UnmarshalPageHeader parses a single Thrift compact-protocol PageHeader
// from buf, returning the header and the number of bytes consumed.
func UnmarshalPageHeader(buf []byte) (*PageHeader, int, error) {
	d := thriftcompact.NewDecoder(buf)
	h := new(PageHeader)
	if err := readPageHeader(d, h); err != nil {
		return nil, 0, err
	}
	return h, d.Pos(), nil
}

func readPageHeader(d *thriftcompact.Decoder, h *PageHeader) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.Type = PageType(v)
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.UncompressedPageSize = v
		case 3:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.CompressedPageSize = v
		case 4:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.HasCRC = true
			h.CRC = v
		case 5:
			h.HasDataPageHeader = true
			if err := readDataPageHeader(d, &h.DataPageHeader); err != nil {
				return err
			}
		case 7:
			h.HasDictionaryPageHeader = true
			if err := readDictionaryPageHeader(d, &h.DictionaryPageHeader); err != nil {
				return err
			}
		case 8:
			h.HasDataPageHeaderV2 = true
			if err := readDataPageHeaderV2(d, &h.DataPageHeaderV2); err != nil {
				return err
			}
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readDataPageHeader(d *thriftcompact.Decoder, h *DataPageHeader) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.NumValues = v
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 3:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.DefinitionLevelEncoding = Encoding(v)
		case 4:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.RepetitionLevelEncoding = Encoding(v)
		case 5:
			h.HasStatistics = true
			if err := readStatistics(d, noopArena, &h.Statistics); err != nil {
				return err
			}
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readDataPageHeaderV2(d *thriftcompact.Decoder, h *DataPageHeaderV2) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	h.IsCompressed = true // default per spec if the field is absent
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.NumValues = v
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.NumNulls = v
		case 3:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.NumRows = v
		case 4:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 5:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.DefinitionLevelsByteLength = v
		case 6:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.RepetitionLevelsByteLength = v
		case 7:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			h.HasIsCompressed = true
			h.IsCompressed = v
		case 8:
			h.HasStatistics = true
			if err := readStatistics(d, noopArena, &h.Statistics); err != nil {
				return err
			}
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

func readDictionaryPageHeader(d *thriftcompact.Decoder, h *DictionaryPageHeader) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.NumValues = v
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			h.Encoding = Encoding(v)
		case 3:
			v, err := d.ReadBool()
			if err != nil {
				return err
			}
			h.HasIsSorted = true
			h.IsSorted = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

// UnmarshalColumnIndex parses a ColumnIndex.
func UnmarshalColumnIndex(buf []byte, a *arena.Arena) (*ColumnIndex, error) {
	d := thriftcompact.NewDecoder(buf)
	idx := new(ColumnIndex)
	if err := d.ReadStructBegin(); err != nil {
		return nil, err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return nil, err
		}
		if fh.Type == thriftcompact.TypeStop {
			return idx, nil
		}
		switch fh.ID {
		case 1:
			lh, err := d.ReadListBegin()
			if err != nil {
				return nil, err
			}
			idx.NullPages = make([]bool, lh.Size)
			for i := range idx.NullPages {
				v, err := d.ReadBool()
				if err != nil {
					return nil, err
				}
				idx.NullPages[i] = v
			}
		case 2:
			lh, err := d.ReadListBegin()
			if err != nil {
				return nil, err
			}
			idx.MinValues = make([][]byte, lh.Size)
			for i := range idx.MinValues {
				v, err := d.ReadBinary()
				if err != nil {
					return nil, err
				}
				idx.MinValues[i] = a.DupBytes(v)
			}
		case 3:
			lh, err := d.ReadListBegin()
			if err != nil {
				return nil, err
			}
			idx.MaxValues = make([][]byte, lh.Size)
			for i := range idx.MaxValues {
				v, err := d.ReadBinary()
				if err != nil {
					return nil, err
				}
				idx.MaxValues[i] = a.DupBytes(v)
			}
		case 4:
			v, err := d.ReadI32()
			if err != nil {
				return nil, err
			}
			idx.BoundaryOrder = BoundaryOrder(v)
		case 5:
			lh, err := d.ReadListBegin()
			if err != nil {
				return nil, err
			}
			idx.HasNullCounts = true
			idx.NullCounts = make([]int64, lh.Size)
			for i := range idx.NullCounts {
				v, err := d.ReadI64()
				if err != nil {
					return nil, err
				}
				idx.NullCounts[i] = v
			}
		default:
			if err := d.Skip(fh.Type); err != nil {
				return nil, err
			}
		}
	}
}

// UnmarshalOffsetIndex parses an OffsetIndex.
func UnmarshalOffsetIndex(buf []byte) (*OffsetIndex, error) {
	d := thriftcompact.NewDecoder(buf)
	idx := new(OffsetIndex)
	if err := d.ReadStructBegin(); err != nil {
		return nil, err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return nil, err
		}
		if fh.Type == thriftcompact.TypeStop {
			return idx, nil
		}
		switch fh.ID {
		case 1:
			lh, err := d.ReadListBegin()
			if err != nil {
				return nil, err
			}
			idx.PageLocations = make([]PageLocation, lh.Size)
			for i := range idx.PageLocations {
				if err := readPageLocation(d, &idx.PageLocations[i]); err != nil {
					return nil, err
				}
			}
		default:
			if err := d.Skip(fh.Type); err != nil {
				return nil, err
			}
		}
	}
}

func readPageLocation(d *thriftcompact.Decoder, p *PageLocation) error {
	if err := d.ReadStructBegin(); err != nil {
		return err
	}
	defer d.ReadStructEnd()
	for {
		fh, err := d.ReadFieldBegin()
		if err != nil {
			return err
		}
		if fh.Type == thriftcompact.TypeStop {
			return nil
		}
		switch fh.ID {
		case 1:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			p.Offset = v
		case 2:
			v, err := d.ReadI32()
			if err != nil {
				return err
			}
			p.CompressedPageSize = v
		case 3:
			v, err := d.ReadI64()
			if err != nil {
				return err
			}
			p.FirstRowIndex = v
		default:
			if err := d.Skip(fh.Type); err != nil {
				return err
			}
		}
	}
}

// noopArena backs Statistics nested in page headers, which are transient
// (scoped to one page read) rather than file-lifetime metadata.
var noopArena = arena.New()
