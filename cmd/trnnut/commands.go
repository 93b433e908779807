package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/MrEthical07/trnnut"
	"github.com/MrEthical07/trnnut/document"
	"github.com/MrEthical07/trnnut/ledger"
	"github.com/MrEthical07/trnnut/permission"
	"github.com/MrEthical07/trnnut/store"
	"github.com/alicebob/miniredis/v2"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var errDenied = errors.New("denied")

/*
====================================
INPUT / OUTPUT
====================================
*/

func newFlagSet(e *env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return usageError{err: err}
	}
	if fs.NArg() > 0 {
		return usagef("unexpected arguments %v", fs.Args())
	}
	return nil
}

func readInput(e *env, path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(e.stdin)
	}
	return os.ReadFile(path)
}

func decodeHex(data []byte) ([]byte, error) {
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	b, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("token hex: %w", err)
	}
	return b, nil
}

// tokenFlags binds the flags shared by every command that reads a token.
type tokenFlags struct {
	in       *string
	document *bool
}

func bindTokenFlags(fs *flag.FlagSet) tokenFlags {
	return tokenFlags{
		in:       fs.String("in", "-", "input file, - for stdin"),
		document: fs.Bool("json", false, "input is a JSON document instead of hex"),
	}
}

func (f tokenFlags) load(e *env) (*trnnut.TRNNut, error) {
	data, err := readInput(e, *f.in)
	if err != nil {
		return nil, err
	}
	if *f.document {
		return document.Parse(data)
	}
	raw, err := decodeHex(data)
	if err != nil {
		return nil, err
	}
	return e.codec.Decode(raw)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func openRedis(e *env, addr string, allowEphemeral bool) (redis.UniversalClient, func(), error) {
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		if !allowEphemeral {
			return nil, nil, usagef("-redis-addr or REDIS_ADDR is required")
		}
		mr, err := miniredis.Run()
		if err != nil {
			return nil, nil, fmt.Errorf("start miniredis: %w", err)
		}
		client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{mr.Addr()}})
		e.logger.Debug("using miniredis", zap.String("addr", mr.Addr()))
		return client, func() {
			_ = client.Close()
			mr.Close()
		}, nil
	}
	client := redis.NewUniversalClient(&redis.UniversalOptions{Addrs: []string{addr}})
	e.logger.Debug("using redis", zap.String("addr", addr))
	return client, func() { _ = client.Close() }, nil
}

/*
====================================
COMMANDS
====================================
*/

func runEncode(e *env, args []string) error {
	fs := newFlagSet(e, "encode")
	in := fs.String("in", "-", "JSON document file, - for stdin")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	data, err := readInput(e, *in)
	if err != nil {
		return err
	}
	tok, err := document.Parse(data)
	if err != nil {
		return err
	}
	out, err := e.codec.Encode(tok)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, hexutil.Encode(out))
	return err
}

func runDecode(e *env, args []string) error {
	fs := newFlagSet(e, "decode")
	tf := tokenFlags{in: fs.String("in", "-", "hex token file, - for stdin"), document: new(bool)}
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}
	out, err := document.Render(tok)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, string(out))
	return err
}

func runModule(e *env, args []string) error {
	fs := newFlagSet(e, "module")
	tf := bindTokenFlags(fs)
	key := fs.String("key", "", "module key")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if *key == "" {
		return usagef("-key is required")
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}
	view, ok := tok.GetModule(*key)
	if !ok {
		return fmt.Errorf("module %q not found", *key)
	}
	return writeJSON(e.stdout, view)
}

func runContract(e *env, args []string) error {
	fs := newFlagSet(e, "contract")
	tf := bindTokenFlags(fs)
	address := fs.String("address", "", "0x-prefixed 32-byte contract address")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	addr, err := permission.ParseContractAddress(*address)
	if err != nil {
		return usageError{err: err}
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}
	view, ok := tok.GetContract(addr)
	if !ok {
		return fmt.Errorf("contract %s not found", addr)
	}
	return writeJSON(e.stdout, view)
}

func runVerify(e *env, args []string) error {
	fs := newFlagSet(e, "verify")
	tf := bindTokenFlags(fs)
	address := fs.String("address", "", "contract address to verify")
	module := fs.String("module", "", "module of a runtime call")
	method := fs.String("method", "", "method of a runtime call")
	cooldown := fs.Bool("cooldown", false, "also check block cooldowns against the ledger")
	block := fs.Uint64("block", 0, "current block height for -cooldown")
	use := fs.Bool("use", false, "record the use in the ledger when allowed")
	redisAddr := fs.String("redis-addr", "", "ledger redis address; REDIS_ADDR or an in-process miniredis when empty")
	prefix := fs.String("prefix", "trnnut", "ledger key prefix")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	runtimeCall := *module != "" || *method != ""
	if runtimeCall == (*address != "") {
		return usagef("give either -address or -module and -method")
	}
	if runtimeCall && (*module == "" || *method == "") {
		return usagef("-module and -method go together")
	}
	if *use && !*cooldown {
		return usagef("-use requires -cooldown")
	}

	var addr permission.ContractAddress
	if !runtimeCall {
		parsed, err := permission.ParseContractAddress(*address)
		if err != nil {
			return usageError{err: err}
		}
		addr = parsed
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}

	if !*cooldown {
		if runtimeCall {
			if err := tok.ValidateRuntimeCall(*module, *method); err != nil {
				return fmt.Errorf("%w: %v", errDenied, err)
			}
		} else if !tok.VerifyContract(addr) {
			return fmt.Errorf("%w: contract %s not held", errDenied, addr)
		}
		_, err := fmt.Fprintln(e.stdout, "granted")
		return err
	}

	client, closeRedis, err := openRedis(e, *redisAddr, true)
	if err != nil {
		return err
	}
	defer closeRedis()

	tracker, err := ledger.NewRedis(client, ledger.Config{Prefix: *prefix}, ledger.WithLogger(e.logger))
	if err != nil {
		return err
	}
	heights := trnnut.BlockHeightFunc(func(context.Context) (uint64, error) { return *block, nil })
	opts := []trnnut.VerifierOption{
		trnnut.WithLogger(e.logger),
		trnnut.WithMetrics(e.codec.Metrics()),
	}
	if e.observer != nil {
		opts = append(opts, trnnut.WithVerifierObserver(e.observer))
	}
	verifier, err := trnnut.NewCooldownVerifier(tracker, heights, opts...)
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch {
	case *use && runtimeCall:
		err = verifier.UseRuntimeCall(ctx, tok, *module, *method)
	case *use:
		err = verifier.UseContract(ctx, tok, addr)
	default:
		var ok bool
		if runtimeCall {
			ok, err = verifier.VerifyRuntimeCall(ctx, tok, *module, *method)
		} else {
			ok, err = verifier.VerifyContract(ctx, tok, addr)
		}
		if err == nil && !ok {
			err = fmt.Errorf("%w at block %d", errDenied, *block)
		}
	}
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, "granted")
	return err
}

func runDigest(e *env, args []string) error {
	fs := newFlagSet(e, "digest")
	tf := bindTokenFlags(fs)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}
	digest, err := tok.Digest()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, digest.Hex())
	return err
}

func runSave(e *env, args []string) error {
	fs := newFlagSet(e, "save")
	tf := bindTokenFlags(fs)
	redisAddr := fs.String("redis-addr", "", "redis address; REDIS_ADDR when empty")
	prefix := fs.String("prefix", "trnnut", "store key prefix")
	ttl := fs.Duration("ttl", 0, "expire the stored token after this long; 0 keeps it")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	tok, err := tf.load(e)
	if err != nil {
		return err
	}
	client, closeRedis, err := openRedis(e, *redisAddr, false)
	if err != nil {
		return err
	}
	defer closeRedis()

	s, err := store.NewStore(client, store.Config{Prefix: *prefix, TTL: *ttl}, store.WithLogger(e.logger), store.WithCodec(e.codec))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	id, err := s.Save(ctx, tok)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, id.String())
	return err
}

func runLoad(e *env, args []string) error {
	fs := newFlagSet(e, "load")
	rawID := fs.String("id", "", "token id printed by save")
	redisAddr := fs.String("redis-addr", "", "redis address; REDIS_ADDR when empty")
	prefix := fs.String("prefix", "trnnut", "store key prefix")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	id, err := uuid.Parse(*rawID)
	if err != nil {
		return usagef("-id: %v", err)
	}

	client, closeRedis, err := openRedis(e, *redisAddr, false)
	if err != nil {
		return err
	}
	defer closeRedis()

	s, err := store.NewStore(client, store.Config{Prefix: *prefix}, store.WithLogger(e.logger), store.WithCodec(e.codec))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tok, err := s.Load(ctx, id)
	if err != nil {
		return err
	}
	out, err := document.Render(tok)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(e.stdout, string(out))
	return err
}
