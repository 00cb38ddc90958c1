package board

// Page scripts. Each is a function expression evaluated with at most one
// argument.

// locateScript finds the first selector with a non-empty box and reports the
// box plus the side at the bottom. A "flipped" class on the board or an
// ancestor decides first. Otherwise the topmost rank label "1" or "8" within
// labelMargin pixels of the board decides, skipping notification, icon,
// badge, button and menu elements. With neither, white is at the bottom.
const locateScript = `(selectors) => {
  const labelMargin = 40;
  const skip = /notification|icon|badge|button|menu/i;
  for (const sel of selectors) {
    const el = document.querySelector(sel);
    if (!el) continue;
    const r = el.getBoundingClientRect();
    if (r.width <= 0 || r.height <= 0) continue;
    const box = {
      found: true,
      selector: sel,
      left: r.left,
      top: r.top,
      width: r.width,
      height: r.height,
    };
    if (el.closest('.flipped') || el.classList.contains('flipped')) {
      return { ...box, flipped: true, method: 'css-class' };
    }
    const labels = [];
    for (const node of document.querySelectorAll('text, div, span')) {
      if (node.children.length > 0) continue;
      const text = (node.textContent || '').trim();
      if (text !== '1' && text !== '8') continue;
      const cls = String(node.getAttribute('class') || '');
      if (skip.test(cls)) continue;
      const lr = node.getBoundingClientRect();
      if (lr.width <= 0 && lr.height <= 0) continue;
      if (lr.right < r.left - labelMargin || lr.left > r.right + labelMargin) continue;
      if (lr.bottom < r.top - labelMargin || lr.top > r.bottom + labelMargin) continue;
      labels.push({ text: text, top: lr.top });
    }
    if (labels.length > 0) {
      labels.sort((a, b) => a.top - b.top);
      return { ...box, flipped: labels[0].text === '1', method: 'coordinate-labels' };
    }
    return { ...box, flipped: false, method: 'default' };
  }
  return { found: false };
}`

// lastMoveScript lists the square classes carrying the "highlight" class,
// sorted and without duplicates. It takes no argument.
const lastMoveScript = `() => {
  const squares = new Set();
  for (const el of document.querySelectorAll('.highlight')) {
    for (const c of el.classList) {
      if (/^square-\d\d$/.test(c)) squares.add(c);
    }
  }
  return Array.from(squares).sort();
}`

// inspectScript counts board-related elements across the document and
// returns the matched board's markup for offline parsing.
const inspectScript = `(selectors) => {
  const count = (q) => document.querySelectorAll(q).length;
  let board = null, selector = '';
  for (const sel of selectors) {
    board = document.querySelector(sel);
    if (board) { selector = sel; break; }
  }
  const host = board ? (board.closest('wc-chess-board, chess-board, .board') || board) : null;
  return {
    boards: count('[class*="board"]'),
    squares: count('[class*="square"]'),
    pieces: count('[class*="piece"]'),
    selector: selector,
    html: host ? host.outerHTML : '',
  };
}`
