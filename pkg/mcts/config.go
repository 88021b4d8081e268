package mcts

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Config is the MCTS Engine's configuration table (spec §4.4).
type Config struct {
	Games          int     // target playouts per gen_move call; each worker runs this full budget
	GameLen        int     // max plies of random rollout before forced scoring
	ExpandP        int32   // visits required before a leaf is expanded
	RadarD         int     // expansion locality radius (0 = unrestricted)
	DumpThres      int32   // minimum visits for a node to appear in debug dumps
	PlayoutAMAF    bool    // also feed rollout moves into the AMAF map
	Threads        int     // worker count (0 = in-caller)
	ResignRatio    float32 // resign when best child's value is below this
	LossThreshold  float32 // stop early when best child exceeds this with enough visits
	ForceSeed      int64   // deterministic RNG seed; used only when ForceSeedIsSet
	ForceSeedIsSet bool
	PolicyName     string // ucb1 | ucb1tuned | ucb1amaf[:subargs]
	PlayoutName    string // old | moggy | light[:subargs]
	Debug          int    // verbosity, mapped onto klog's -v level
}

// DefaultConfig returns spec §4.4's configuration defaults.
func DefaultConfig() Config {
	return Config{
		Games:         80000,
		GameLen:       400,
		ExpandP:       2,
		RadarD:        0,
		DumpThres:     1000,
		PlayoutAMAF:   false,
		Threads:       0,
		ResignRatio:   0.2,
		LossThreshold: 0.85,
		PolicyName:    "ucb1amaf",
		PlayoutName:   "moggy",
	}
}

// ParseArgs parses spec §6's comma-separated key=value argument string
// into cfg, starting from DefaultConfig(). Unknown keys or unknown
// policy/playout names are never fatal: each produces one entry in the
// returned multierror.Error (nil if there were no diagnostics) and the
// corresponding field is left at its default, matching spec §7's
// "Configuration error: a diagnostic is emitted and a default is used."
func ParseArgs(argString string) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(argString) == "" {
		return cfg, nil
	}

	var diagnostics *multierror.Error

	for _, kv := range strings.Split(argString, ",") {
		kv = strings.TrimSpace(kv)
		if kv == "" {
			continue
		}
		key, value, hasValue := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "debug":
			if !hasValue {
				cfg.Debug++
			} else if n, err := strconv.Atoi(value); err == nil {
				cfg.Debug = n
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad debug value %q", value))
			}
		case "games":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.Games = n
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad games value %q", value))
			}
		case "gamelen":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.GameLen = n
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad gamelen value %q", value))
			}
		case "expand_p":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.ExpandP = int32(n)
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad expand_p value %q", value))
			}
		case "radar_d":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.RadarD = n
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad radar_d value %q", value))
			}
		case "dumpthres":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.DumpThres = int32(n)
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad dumpthres value %q", value))
			}
		case "playout_amaf":
			cfg.PlayoutAMAF = !hasValue || value != "0"
		case "threads":
			if n, err := strconv.Atoi(value); err == nil {
				cfg.Threads = n
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad threads value %q", value))
			}
		case "resign_ratio":
			if f, err := strconv.ParseFloat(value, 32); err == nil {
				cfg.ResignRatio = float32(f)
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad resign_ratio value %q", value))
			}
		case "loss_threshold":
			if f, err := strconv.ParseFloat(value, 32); err == nil {
				cfg.LossThreshold = float32(f)
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad loss_threshold value %q", value))
			}
		case "force_seed":
			if n, err := strconv.ParseInt(value, 10, 64); err == nil {
				cfg.ForceSeed = n
				cfg.ForceSeedIsSet = true
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Wrapf(err, "mcts: bad force_seed value %q", value))
			}
		case "policy":
			name, _, _ := strings.Cut(value, ":")
			if name == "ucb1" || name == "ucb1tuned" || name == "ucb1amaf" {
				cfg.PolicyName = value
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Errorf("mcts: unknown policy %q, using default %q", value, cfg.PolicyName))
			}
		case "playout":
			name, _, _ := strings.Cut(value, ":")
			if name == "old" || name == "moggy" || name == "light" {
				cfg.PlayoutName = value
			} else {
				diagnostics = multierror.Append(diagnostics, errors.Errorf("mcts: unknown playout %q, using default %q", value, cfg.PlayoutName))
			}
		default:
			diagnostics = multierror.Append(diagnostics, errors.Errorf("mcts: unknown option %q, ignored", key))
		}
	}

	return cfg, diagnostics.ErrorOrNil()
}

// BuildPolicy resolves cfg.PolicyName (ignoring any ":subargs" suffix,
// which belongs to the policy plug-in itself per spec §1) into a Policy.
func BuildPolicy(name string) Policy {
	base, _, _ := strings.Cut(name, ":")
	switch base {
	case "ucb1":
		return NewUCB1()
	case "ucb1tuned":
		return NewUCB1Tuned()
	default:
		return NewUCB1AMAF()
	}
}
