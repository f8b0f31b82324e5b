package mock

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"remock.dev/pkg/remock/internal/adapter"
	"remock.dev/pkg/remock/internal/controller"
	"remock.dev/pkg/remock/internal/engine"
	m "remock.dev/pkg/remock/internal/model"
)

// RunArgs configures a scripted run: scripts to compile, an optional mock
// plan, and the invocations to execute.
type RunArgs struct {
	Scripts []m.Path
	Plan    m.Path
	Calls   []string
}

// SlotsArgs configures the slot listing.
type SlotsArgs struct {
	Scripts []m.Path
	Plan    m.Path
}

// ConsoleArgs configures the interactive console.
type ConsoleArgs struct {
	Scripts []m.Path
	Plan    m.Path
}

// Workflow is the command-level orchestration over scripts, plans, a
// session, and the UI.
type Workflow interface {
	Run(ctx context.Context, args RunArgs) error
	Slots(ctx context.Context, args SlotsArgs) error
	Console(ctx context.Context, args ConsoleArgs) error
}

type workflow struct {
	adapter.ScriptFS
	adapter.PlanStore
	ui controller.UI
}

// NewWorkflow creates a Workflow with the provided dependencies.
func NewWorkflow(scripts adapter.ScriptFS, plans adapter.PlanStore, ui controller.UI) Workflow {
	return &workflow{ScriptFS: scripts, PlanStore: plans, ui: ui}
}

// Run applies the plan's mocks, compiles the scripts (mocks registered
// before a class compiles bind the moment it loads), executes the plan's and
// the caller's invocations, and renders the results.
func (w *workflow) Run(ctx context.Context, args RunArgs) error {
	loader, session, plan, err := w.prepare(ctx, args.Scripts, args.Plan)
	if err != nil {
		return err
	}
	defer session.Close()

	calls := append(append([]string{}, plan.Calls...), args.Calls...)
	if len(calls) == 0 {
		return fmt.Errorf("nothing to call: pass --call or add calls to the plan")
	}

	results := executeCalls(loader, calls)

	return w.ui.DisplayCallResults(ctx, results)
}

// Slots compiles the scripts (applying the plan first, when given) and
// renders every call slot with its rewrite and override status.
func (w *workflow) Slots(ctx context.Context, args SlotsArgs) error {
	loader, session, _, err := w.prepare(ctx, args.Scripts, args.Plan)
	if err != nil {
		return err
	}
	defer session.Close()

	return w.ui.DisplaySlots(ctx, SlotInfos(loader, session.Registry()))
}

// Console compiles the scripts (applying the plan first, when given) and
// hands the session to an interactive console until the user quits.
func (w *workflow) Console(ctx context.Context, args ConsoleArgs) error {
	loader, session, _, err := w.prepare(ctx, args.Scripts, args.Plan)
	if err != nil {
		return err
	}
	defer session.Close()

	console := controller.NewConsole(session, loader, func() []m.SlotInfo {
		return SlotInfos(loader, session.Registry())
	})

	return console.Run()
}

// prepare reads and compiles the scripts with a fresh loader and session,
// applying the plan's mocks before anything compiles.
func (w *workflow) prepare(ctx context.Context, scripts []m.Path, planPath m.Path) (*engine.Loader, *Session, m.Plan, error) {
	if len(scripts) == 0 {
		return nil, nil, m.Plan{}, fmt.Errorf("no scripts given")
	}

	sources, err := w.readScripts(ctx, scripts)
	if err != nil {
		return nil, nil, m.Plan{}, err
	}

	loader := engine.NewLoader()
	session := NewSession(loader)

	var plan m.Plan

	if planPath != "" {
		plan, err = w.LoadPlan(planPath)
		if err == nil {
			err = ApplyPlan(session, plan)
		}

		if err != nil {
			session.Close()
			return nil, nil, m.Plan{}, err
		}
	}

	for _, src := range sources {
		if _, err := loader.Compile(src.name, src.text); err != nil {
			session.Close()
			return nil, nil, m.Plan{}, err
		}
	}

	return loader, session, plan, nil
}

type scriptSource struct {
	name string
	text string
}

// readScripts loads script files concurrently, preserving argument order.
func (w *workflow) readScripts(ctx context.Context, paths []m.Path) ([]scriptSource, error) {
	sources := make([]scriptSource, len(paths))

	group, _ := errgroup.WithContext(ctx)

	for i, path := range paths {
		group.Go(func() error {
			name, text, err := w.ReadScript(path)
			if err != nil {
				return err
			}

			sources[i] = scriptSource{name: name, text: text}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return sources, nil
}

// ApplyPlan registers every mock entry of a plan, in file order. Returns on
// the first entry that fails to compile or validate.
func ApplyPlan(session *Session, plan m.Plan) error {
	for i, entry := range plan.Mocks {
		replacement, err := engine.CompileExpr(entry.Returns)
		if err != nil {
			return fmt.Errorf("mock #%d: %w", i+1, err)
		}

		var predicate m.Predicate

		if entry.When != "" {
			predicate, err = engine.CompilePredicate(entry.When)
			if err != nil {
				return fmt.Errorf("mock #%d: %w", i+1, err)
			}
		}

		if err := session.AddMethodMock(entry.Class, entry.Method, replacement, predicate); err != nil {
			return fmt.Errorf("mock #%d: %w", i+1, err)
		}
	}

	return nil
}

// executeCalls runs each call spec against a per-class session instance,
// created from the newest loaded version on first use so receiver state
// persists across calls.
func executeCalls(loader *engine.Loader, calls []string) []m.CallResult {
	instances := make(map[string]*engine.Object)
	results := make([]m.CallResult, 0, len(calls))

	for _, spec := range calls {
		results = append(results, executeCall(loader, instances, spec))
	}

	return results
}

func executeCall(loader *engine.Loader, instances map[string]*engine.Object, spec string) m.CallResult {
	result := m.CallResult{Expr: spec}

	className, methodName, args, err := engine.ParseCallSpec(spec)
	if err != nil {
		result.Err = err
		return result
	}

	instance, ok := instances[className]
	if !ok {
		versions := loader.ClassesByName(className)
		if len(versions) == 0 {
			result.Err = fmt.Errorf("no loaded class named %s", className)
			return result
		}

		instance, err = versions[len(versions)-1].New()
		if err != nil {
			result.Err = err
			return result
		}

		instances[className] = instance
	}

	result.Value, result.Err = instance.Call(methodName, args...)

	return result
}

// SlotInfos builds display rows for every call slot the loader knows,
// annotated with the registry's rewrite and override state.
func SlotInfos(loader *engine.Loader, registry *Registry) []m.SlotInfo {
	var infos []m.SlotInfo

	for _, module := range loader.Modules() {
		for _, class := range module.Classes() {
			for _, slot := range class.Companion().Slots() {
				key := m.NewMethodKey(class.TypeName(), slot.MethodName())

				infos = append(infos, m.SlotInfo{
					Address:     string(EncodeSlotAddress(slot)),
					Module:      module.Name(),
					Class:       class.TypeName(),
					Method:      slot.MethodName(),
					Arity:       len(slot.Decl().Params),
					Synthesized: slot.Decl().Synthesized,
					Rewritten:   registry.Rewritten(slot),
					Overrides:   registry.OverrideCount(key),
				})
			}
		}
	}

	return infos
}
