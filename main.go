package main

import (
	"os"
	"strings"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"ecmameta/blob"
	"ecmameta/handles"
	"ecmameta/heaps"
	"ecmameta/sizes"
	"ecmameta/tables"
)

// main writes the table stream of a minimal library module, followed by its
// string, guid and blob heaps, to the file named by the first argument. Output
// to a file ending in .sz is snappy block compressed.
func main() {
	out := "tables.bin"
	if len(os.Args) > 1 {
		out = os.Args[1]
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	err = run(logger, out)
	if err != nil {
		logger.Error("cannot write metadata", zap.String("file", out), zap.Error(err))
	}
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func run(logger *zap.Logger, out string) (err error) {
	w, err := build(logger)
	if err != nil {
		return errors.Wrap(err, "build metadata")
	}

	f, err := os.Create(out)
	if err != nil {
		return errors.Wrap(err, "create output")
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrap(cerr, "close output")
		}
	}()

	data := w.Bytes()
	if strings.HasSuffix(out, ".sz") {
		data = snappy.Encode(nil, data)
	}
	if _, err := f.Write(data); err != nil {
		return errors.Wrap(err, "write output")
	}
	logger.Info("wrote metadata",
		zap.String("file", out),
		zap.Int("bytes", w.Count()),
		zap.Int("written", len(data)),
	)
	return nil
}

func build(logger *zap.Logger) (*blob.Builder, error) {
	h := heaps.NewBuilder()
	b := tables.NewBuilder(append(tables.ConfigFromEnv(), tables.WithLogger(logger))...)

	mvid, mvidHandle := h.NewModuleVersionID()
	logger.Debug("generated module version id", zap.Stringer("mvid", mvid))

	if _, err := b.AddModule(0, h.GetOrAddString("demo.dll"), mvidHandle, 0, 0); err != nil {
		return nil, err
	}
	if _, err := b.AddAssembly(h.GetOrAddString("demo"), &tables.Version{Major: 1}, 0, 0, 0, tables.AssemblyHashAlgorithmSha1); err != nil {
		return nil, err
	}

	corlib, err := b.AddAssemblyReference(
		h.GetOrAddString("System.Runtime"),
		&tables.Version{Major: 8},
		0,
		h.GetOrAddBlob([]byte{0xb0, 0x3f, 0x5f, 0x7f, 0x11, 0xd5, 0x0a, 0x3a}),
		0,
		0,
	)
	if err != nil {
		return nil, err
	}

	object, err := b.AddTypeReference(corlib, h.GetOrAddString("System"), h.GetOrAddString("Object"))
	if err != nil {
		return nil, err
	}

	// <Module> owns no members; the next type starts at the first field and method
	if _, err := b.AddTypeDefinition(0, 0, h.GetOrAddString("<Module>"), handles.Nil, handles.FieldDefinition(1), handles.MethodDefinition(1)); err != nil {
		return nil, err
	}
	if _, err := b.AddTypeDefinition(0x00100001, h.GetOrAddString("Demo"), h.GetOrAddString("Greeter"), object, handles.FieldDefinition(1), handles.MethodDefinition(1)); err != nil {
		return nil, err
	}

	ms := sizes.New(b.RowCounts(), h.Sizes())
	w := blob.NewBuilder(ms.MetadataTableStreamSize())
	if err := b.Serialize(w, ms, 0, 0); err != nil {
		return nil, err
	}
	h.WriteStrings(w)
	h.WriteGuids(w)
	h.WriteBlobs(w)
	return w, nil
}
