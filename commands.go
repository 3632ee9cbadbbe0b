package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go-heapdb/config"
	"go-heapdb/pkg/bufferpool"
	"go-heapdb/pkg/catalog"
	"go-heapdb/pkg/customerrors"
	"go-heapdb/pkg/execution"
	"go-heapdb/pkg/heapfile"
	"go-heapdb/pkg/iterator"
	"go-heapdb/pkg/schema"
	"go-heapdb/pkg/transaction"
	"go-heapdb/pkg/tuple"
	"go-heapdb/pkg/types"
	"go-heapdb/util/helpers"
	"go-heapdb/util/logger"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

func runConvert(cfg *config.AppConfig, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	in := fs.String("in", "", "comma separated text input")
	out := fs.String("out", "", "heap file to write")
	typeList := fs.String("types", "", "comma separated field types")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" || *out == "" || *typeList == "" {
		return errors.Wrap(customerrors.ErrInvalidArgument, "convert needs -in, -out and -types")
	}

	desc, err := parseSchema(*typeList)
	if err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return errors.Wrapf(err, "failed to open '%s'", *in)
	}
	defer f.Close()

	tuples, err := readRows(f, desc)
	if err != nil {
		return errors.Wrapf(err, "failed to read '%s'", *in)
	}

	if err := helpers.CreateDir(filepath.Dir(*out)); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}
	return heapfile.Create(*out, desc, tuples, cfg.Storage.PageSize)
}

func parseSchema(list string) (*schema.TupleDesc, error) {
	names := strings.Split(list, ",")
	typs := make([]types.Type, len(names))
	for i, n := range names {
		typ, err := types.ParseType(strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		typs[i] = typ
	}
	return schema.New(typs, nil)
}

// readRows parses one tuple per non empty line, fields separated by commas.
func readRows(r io.Reader, desc *schema.TupleDesc) ([]*tuple.Tuple, error) {
	var tuples []*tuple.Tuple
	scanner := bufio.NewScanner(r)
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		parts := strings.Split(text, ",")
		if len(parts) != desc.NumFields() {
			return nil, errors.Wrapf(customerrors.ErrInvalidArgument,
				"line %d: got %d fields, want %d", line, len(parts), desc.NumFields())
		}

		t := tuple.New(desc)
		for i, p := range parts {
			typ, _ := desc.FieldType(i)
			f, err := typ.ParseText(strings.TrimSpace(p))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			if err := t.SetField(i, f); err != nil {
				return nil, err
			}
		}
		tuples = append(tuples, t)
	}
	return tuples, scanner.Err()
}

type session struct {
	catalog *catalog.Catalog
	ctx     *execution.Context
}

func openSession(cfg *config.AppConfig, catalogPath string) (*session, error) {
	if catalogPath == "" {
		catalogPath = filepath.Join(cfg.Storage.DataPath, cfg.Storage.CatalogFile)
	}

	c := catalog.New()
	if err := c.LoadSchema(catalogPath, cfg.Storage.PageSize); err != nil {
		return nil, err
	}

	bp, err := bufferpool.New(cfg.Storage, c)
	if err != nil {
		c.Close()
		return nil, err
	}

	return &session{
		catalog: c,
		ctx: &execution.Context{
			Tid:     transaction.NewID(),
			Catalog: c,
			Pages:   bp,
		},
	}, nil
}

func (s *session) scan(table, alias string) (*execution.SeqScan, error) {
	id, err := s.catalog.TableID(table)
	if err != nil {
		return nil, err
	}
	if alias == "" {
		return execution.NewSeqScanDefault(s.ctx, id)
	}
	return execution.NewSeqScan(s.ctx, id, alias)
}

func (s *session) Close() error {
	return s.catalog.Close()
}

func runScan(ctx context.Context, cfg *config.AppConfig, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("scan", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog file")
	table := fs.String("table", "", "table to scan")
	alias := fs.String("alias", "", "alias for field names")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *table == "" {
		return errors.Wrap(customerrors.ErrInvalidArgument, "scan needs -table")
	}

	s, err := openSession(cfg, *catalogPath)
	if err != nil {
		return err
	}
	defer s.Close()

	op, err := s.scan(*table, *alias)
	if err != nil {
		return err
	}
	return printAll(ctx, op, w)
}

func runJoin(ctx context.Context, cfg *config.AppConfig, args []string, w io.Writer) error {
	fs := flag.NewFlagSet("join", flag.ContinueOnError)
	catalogPath := fs.String("catalog", "", "catalog file")
	left := fs.String("left", "", "outer table")
	right := fs.String("right", "", "inner table")
	on := fs.String("on", "0=0", "join condition, outer field index, operator, inner field index")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *left == "" || *right == "" {
		return errors.Wrap(customerrors.ErrInvalidArgument, "join needs -left and -right")
	}

	pred, err := parsePredicate(*on)
	if err != nil {
		return err
	}

	s, err := openSession(cfg, *catalogPath)
	if err != nil {
		return err
	}
	defer s.Close()

	outer, err := s.scan(*left, "")
	if err != nil {
		return err
	}
	inner, err := s.scan(*right, "")
	if err != nil {
		return err
	}

	join := execution.NewJoin(pred, outer, execution.NewMaterialize(inner))
	f1, err := join.JoinField1Name()
	if err != nil {
		return err
	}
	f2, err := join.JoinField2Name()
	if err != nil {
		return err
	}
	logger.L.WithFields(logrus.Fields{
		"outer": f1,
		"inner": f2,
		"op":    pred.Op,
	}).Info("nested loop join")

	return printAll(ctx, join, w)
}

// operators are tried longest first so ">=" is not read as ">".
var predicateOps = []types.Operator{
	types.GreaterOrEqual,
	types.LessOrEqual,
	types.NotEqual,
	types.Equal,
	types.Greater,
	types.Less,
}

func parsePredicate(s string) (execution.FieldPredicate, error) {
	for _, op := range predicateOps {
		idx := strings.Index(s, string(op))
		if idx < 0 {
			continue
		}

		f1, err1 := strconv.Atoi(strings.TrimSpace(s[:idx]))
		f2, err2 := strconv.Atoi(strings.TrimSpace(s[idx+len(op):]))
		if err1 != nil || err2 != nil {
			break
		}
		return execution.FieldPredicate{Field1: f1, Op: op, Field2: f2}, nil
	}
	return execution.FieldPredicate{}, errors.Wrapf(customerrors.ErrInvalidArgument, "invalid join condition '%s'", s)
}

// printAll writes a header of field names and then one line per tuple,
// stopping early when ctx is cancelled.
func printAll(ctx context.Context, op iterator.OpIterator, w io.Writer) error {
	desc := op.Schema()
	header := make([]string, desc.NumFields())
	for i := range header {
		header[i], _ = desc.FieldName(i)
	}
	if _, err := fmt.Fprintln(w, strings.Join(header, "\t")); err != nil {
		return err
	}

	if err := op.Open(); err != nil {
		return err
	}
	defer op.Close()

	n := 0
	err := iterator.ForEach(op, func(t *tuple.Tuple) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		n++
		_, err := fmt.Fprintln(w, t.String())
		return err
	})

	logger.L.WithField("tuples", n).Info("done")
	return err
}
